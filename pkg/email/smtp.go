package email

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
)

type smtpTransport struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPTransport(host, port, username, password string) Transport {
	return &smtpTransport{host: host, port: port, username: username, password: password}
}

func (t *smtpTransport) Configured() bool {
	return t.host != "" && t.username != "" && t.password != ""
}

func (t *smtpTransport) Deliver(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := m.From
	if m.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", m.FromName), m.From)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		from,
		m.To,
		mime.QEncoding.Encode("UTF-8", m.Subject),
		m.HTML,
	))

	auth := smtp.PlainAuth("", t.username, t.password, t.host)
	addr := fmt.Sprintf("%s:%s", t.host, t.port)
	if err := smtp.SendMail(addr, auth, m.From, []string{m.To}, msg); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}
