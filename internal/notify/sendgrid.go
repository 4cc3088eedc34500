package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers overdue summaries through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   string
	to     string
}

func NewSendGridSender(apiKey, from, to string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
		to:     to,
	}
}

// Send dispatches a plain-text email. The call blocks until the provider responds;
// cancellation comes from the request context only.
func (s *SendGridSender) Send(ctx context.Context, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("Gantt Board", s.from),
		subject,
		mail.NewEmail("", s.to),
		body,
		body,
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: unexpected status %d", resp.StatusCode)
	}
	return nil
}
