package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridTransport struct {
	key string
}

func NewSendGridTransport(key string) Transport {
	return &sendGridTransport{key: key}
}

func (t *sendGridTransport) Configured() bool {
	return t.key != ""
}

func (t *sendGridTransport) Deliver(ctx context.Context, m Message) error {
	from := mail.NewEmail(m.FromName, m.From)
	to := mail.NewEmail("", m.To)
	message := mail.NewSingleEmail(from, m.Subject, to, "", m.HTML)

	client := sendgrid.NewSendClient(t.key)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid: unexpected status code %d", response.StatusCode)
	}
	return nil
}
