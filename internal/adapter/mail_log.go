package adapter

import (
	"context"

	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
)

// logMailer records that a message would have been sent. The token is
// never written to the log.
type logMailer struct {
	sender string
	logger *logger.Logger
}

// NewLogMailer constructs the log-only [Mailer].
func NewLogMailer(cfg config.Mail, log *logger.Logger) Mailer {
	return &logMailer{sender: senderOrDefault(cfg.Sender), logger: log}
}

func (m *logMailer) SendActivation(ctx context.Context, user models.User, _ string) error {
	m.record(ctx, user, models.MailKindActivation)
	return nil
}

func (m *logMailer) SendPasswordReset(ctx context.Context, user models.User, _ string) error {
	m.record(ctx, user, models.MailKindPasswordReset)
	return nil
}

func (m *logMailer) record(_ context.Context, user models.User, kind string) {
	m.logger.Debug().
		Str("func", "*logMailer.record").
		Str("kind", kind).
		Str("from", m.sender).
		Int64("user_id", user.ID).
		Msg("no mail relay configured, message not delivered")
}
