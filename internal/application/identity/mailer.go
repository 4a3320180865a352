package identity

import (
	"context"

	"go.uber.org/zap"
)

// Mailer delivers confirmation tokens to new accounts.
type Mailer interface {
	SendConfirmToken(ctx context.Context, email, token string) error
}

// LogMailer writes confirmation tokens to the log instead of sending mail.
// Used in development and as the default until an SMTP relay is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmToken(ctx context.Context, email, token string) error {
	m.logger.Info("Confirmation token issued",
		zap.String("email", email),
		zap.String("token", token),
	)
	return nil
}
