package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"beebee/models"
)

var ErrMailNotConfigured = errors.New("email is not configured")

// Mailer delivers a rendered e-mail and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, email models.Email) (string, error)
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	logger *zap.Logger
}

func NewResendMailer(apiKey string, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), logger: logger}
}

func (m *ResendMailer) Send(ctx context.Context, email models.Email) (string, error) {
	resp, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("send email %q: %w", email.Subject, err)
	}
	m.logger.Info("Email sent", zap.String("id", resp.Id), zap.Strings("to", email.To))
	return resp.Id, nil
}

// DisabledMailer is used when no API key is configured. Every send fails so
// that a lead is never silently dropped.
type DisabledMailer struct{}

func (DisabledMailer) Send(context.Context, models.Email) (string, error) {
	return "", ErrMailNotConfigured
}
