package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/sakibmtatva/online-job-portal-be/config"
	"github.com/sakibmtatva/online-job-portal-be/pkg/breaker"

	"github.com/sony/gobreaker"
)

// ErrNotConfigured is returned by Send when no provider credentials are set.
var ErrNotConfigured = errors.New("email provider not configured")

// Message is one outbound HTML email.
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	HTML     string
}

// Transport hands a Message to a concrete provider.
type Transport interface {
	Deliver(ctx context.Context, msg Message) error
	Configured() bool
}

// EmailService sends HTML emails through the configured provider
type EmailService struct {
	transport Transport
	from      string
	fromName  string
	cb        *gobreaker.CircuitBreaker
}

// NewEmailService picks SMTP or SendGrid from configuration
func NewEmailService(cfg *config.Config) *EmailService {
	var transport Transport
	switch cfg.EmailProvider {
	case config.EmailProviderSendGrid:
		transport = NewSendGridTransport(cfg.SendGridAPIKey)
	default:
		transport = NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return NewEmailServiceWithTransport(transport, cfg.EmailFrom, cfg.EmailFromName)
}

func NewEmailServiceWithTransport(transport Transport, from, fromName string) *EmailService {
	return &EmailService{
		transport: transport,
		from:      from,
		fromName:  fromName,
		cb:        breaker.New("email"),
	}
}

// Send delivers one HTML email.
func (s *EmailService) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}
	if to == "" {
		return errors.New("email recipient is empty")
	}

	msg := Message{
		FromName: s.fromName,
		From:     s.from,
		To:       to,
		Subject:  subject,
		HTML:     htmlBody,
	}
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.transport.Deliver(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the provider has credentials
func (s *EmailService) IsConfigured() bool {
	return s.transport != nil && s.transport.Configured() && s.from != ""
}
