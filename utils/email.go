// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"
	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailTransport is a single delivery channel. Transports are tried in
// order until one of them accepts the message.
type EmailTransport interface {
	Name() string
	Send(toEmail, subject, body string) error
}

// sendGridTransport delivers through the SendGrid API
type sendGridTransport struct {
	client *sendgrid.Client
	sender string
}

func (t *sendGridTransport) Name() string { return "sendgrid" }

func (t *sendGridTransport) Send(toEmail, subject, body string) error {
	from := mail.NewEmail("FoodBridge", t.sender)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", toEmail), body, body)
	resp, err := t.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// postmarkTransport delivers through Postmark
type postmarkTransport struct {
	client *postmark.Client
	sender string
}

func (t *postmarkTransport) Name() string { return "postmark" }

func (t *postmarkTransport) Send(toEmail, subject, body string) error {
	_, err := t.client.SendEmail(postmark.Email{
		From:     t.sender,
		To:       toEmail,
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		return fmt.Errorf("postmark send failed: %w", err)
	}
	return nil
}

// EmailService sends notifications through an ordered list of transports,
// falling back to the next transport when a send fails.
type EmailService struct {
	transports []EmailTransport
	logger     zerolog.Logger
}

// NewEmailService initializes an EmailService from the environment:
// SendGrid as the primary transport, Postmark as the fallback. A transport
// with no credentials configured is left out of the chain.
func NewEmailService(logger zerolog.Logger) *EmailService {
	sender := os.Getenv("EMAIL_SENDER")

	var transports []EmailTransport
	if key := os.Getenv("SENDGRID_API_KEY"); key != "" {
		transports = append(transports, &sendGridTransport{client: sendgrid.NewSendClient(key), sender: sender})
	}
	if token := os.Getenv("POSTMARK_API_TOKEN"); token != "" {
		transports = append(transports, &postmarkTransport{client: postmark.NewClient(token, ""), sender: sender})
	}
	if len(transports) == 0 {
		logger.Warn().Msg("no email transport configured, notifications will not be delivered")
	}
	return &EmailService{transports: transports, logger: logger}
}

// SendEmail tries each transport in order and reports whether any delivery
// succeeded. Transport errors never escape this boundary; they are logged
// and folded into the boolean result.
func (es *EmailService) SendEmail(toEmail, subject, body string) bool {
	for _, transport := range es.transports {
		if err := transport.Send(toEmail, subject, body); err != nil {
			es.logger.Warn().Err(err).Str("transport", transport.Name()).Str("recipient", toEmail).Msg("email delivery attempt failed")
			continue
		}
		es.logger.Info().Str("transport", transport.Name()).Str("recipient", toEmail).Msg("email sent")
		return true
	}
	es.logger.Error().Str("recipient", toEmail).Msg("all email transports failed")
	return false
}

// SendSMS is a stub: it logs the message and reports success without real
// delivery. A real provider must keep the same no-error contract.
func (es *EmailService) SendSMS(toPhone, message string) bool {
	es.logger.Info().Str("recipient", toPhone).Str("message", message).Msg("sms would be sent")
	return true
}
