package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/go-resty/resty/v2"
)

const (
	messagesPath = "/messages"

	defaultSender   = "noreply@example.com"
	defaultLinkBase = "http://localhost:8080"
)

type httpMailer struct {
	client *resty.Client

	sender   string
	linkBase string

	logger *logger.Logger
}

// NewMailer returns the HTTP relay mailer when a relay URL is configured,
// otherwise the log-only mailer.
func NewMailer(cfg config.Mail, log *logger.Logger) (Mailer, error) {
	if strings.TrimSpace(cfg.RelayURL) == "" {
		return NewLogMailer(cfg, log), nil
	}
	return NewHTTPMailer(cfg, log)
}

// NewHTTPMailer constructs a [Mailer] that posts every message as JSON to
// the relay at cfg.RelayURL.
//
// Returns an error if cfg.RelayURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPMailer(cfg config.Mail, log *logger.Logger) (Mailer, error) {
	baseURL, err := normalizeBaseURL(cfg.RelayURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRelayURL, err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json")

	return &httpMailer{
		client:   client,
		sender:   senderOrDefault(cfg.Sender),
		linkBase: linkBaseOrDefault(cfg.LinkBaseURL),
		logger:   log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SendActivation implements [Mailer].
func (m *httpMailer) SendActivation(ctx context.Context, user models.User, token string) error {
	return m.send(ctx, activationMessage(m.sender, m.linkBase, user, token))
}

// SendPasswordReset implements [Mailer].
func (m *httpMailer) SendPasswordReset(ctx context.Context, user models.User, token string) error {
	return m.send(ctx, passwordResetMessage(m.sender, m.linkBase, user, token))
}

func (m *httpMailer) send(ctx context.Context, msg models.MailMessage) error {
	log := logger.FromContext(ctx)

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(messagesPath)
	if err != nil {
		log.Err(err).Str("func", "*httpMailer.send").Str("kind", msg.Kind).Msg("mail relay request failed")
		return fmt.Errorf("mail relay request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*httpMailer.send").Str("kind", msg.Kind).Int("status", resp.StatusCode()).Msg("mail relay refused message")
		return err
	}

	log.Info().Str("func", "*httpMailer.send").Str("kind", msg.Kind).Msg("mail handed to relay")
	return nil
}

func activationMessage(sender, linkBase string, user models.User, token string) models.MailMessage {
	link := buildLink(linkBase, "account_activations", user.ID, token)
	return models.MailMessage{
		From:    sender,
		To:      user.Email,
		Subject: "Account activation",
		Text:    fmt.Sprintf("Hi %s,\n\nWelcome! Click on the link below to activate your account:\n\n%s\n", user.Name, link),
		Kind:    models.MailKindActivation,
	}
}

func passwordResetMessage(sender, linkBase string, user models.User, token string) models.MailMessage {
	link := buildLink(linkBase, "password_resets", user.ID, token)
	return models.MailMessage{
		From:    sender,
		To:      user.Email,
		Subject: "Password reset",
		Text: fmt.Sprintf("To reset your password click the link below:\n\n%s\n\n"+
			"This link will expire in two hours.\n\n"+
			"If you did not request your password to be reset, please ignore this email and your password will stay as it is.\n", link),
		Kind: models.MailKindPasswordReset,
	}
}

// buildLink renders <base>/<resource>/<token>/edit?id=<id>.
func buildLink(base, resource string, userID int64, token string) string {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(userID, 10))
	return fmt.Sprintf("%s/%s/%s/edit?%s", strings.TrimRight(base, "/"), resource, url.PathEscape(token), q.Encode())
}

func senderOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return defaultSender
	}
	return s
}

func linkBaseOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return defaultLinkBase
	}
	return s
}
