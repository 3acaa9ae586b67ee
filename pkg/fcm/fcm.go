package fcm

import (
	"context"
	"fmt"

	"github.com/sakibmtatva/online-job-portal-be/pkg/breaker"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sony/gobreaker"
	"google.golang.org/api/option"
)

// FCM caps a multicast at 500 tokens.
const maxMulticastTokens = 500

// Client wraps Firebase Cloud Messaging multicast delivery
type Client struct {
	messagingClient *messaging.Client
	cb              *gobreaker.CircuitBreaker
}

// NewClient creates a new FCM client using the provided credentials file.
// An empty path falls back to application default credentials.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	logger.Log.Info("FCM client initialized")
	return &Client{
		messagingClient: messagingClient,
		cb:              breaker.New("fcm"),
	}, nil
}

// Push sends one notification to every token and returns the tokens FCM
// reported as unregistered or malformed. A transport-level error means the
// remaining batches were not attempted.
func (c *Client) Push(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error) {
	var failed []string
	for start := 0; start < len(tokens); start += maxMulticastTokens {
		end := start + maxMulticastTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		batchFailed, err := c.sendBatch(ctx, tokens[start:end], title, body, data)
		if err != nil {
			return failed, err
		}
		failed = append(failed, batchFailed...)
	}
	return failed, nil
}

func (c *Client) sendBatch(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error) {
	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: title,
				Body:  body,
			},
		},
	}

	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.messagingClient.SendEachForMulticast(ctx, message)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send FCM multicast message: %w", err)
	}
	response := result.(*messaging.BatchResponse)

	logger.Log.Debug("FCM multicast sent", "success", response.SuccessCount, "failure", response.FailureCount)

	var deadTokens []string
	for i, resp := range response.Responses {
		if resp.Success {
			continue
		}
		logger.Log.Warn("FCM delivery failed", "token", maskToken(tokens[i]), "error", resp.Error)
		if messaging.IsUnregistered(resp.Error) || messaging.IsInvalidArgument(resp.Error) {
			deadTokens = append(deadTokens, tokens[i])
		}
	}
	return deadTokens, nil
}

func maskToken(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:12] + "..."
}
