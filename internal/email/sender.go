// Package email delivers transactional notification emails over SMTP.
package email

import (
	"context"

	"leadflow_backend/platform/config"
)

// Sender is the outbound email contract used by the notification module.
type Sender interface {
	SendHotLeadAlert(ctx context.Context, toEmail, leadName, companyName string, score int) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender is used when email delivery is disabled. All sends succeed
// without doing anything.
type NoopSender struct{}

func (NoopSender) SendHotLeadAlert(ctx context.Context, toEmail, leadName, companyName string, score int) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender returns an SMTP sender, or a NoopSender when email is disabled.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
