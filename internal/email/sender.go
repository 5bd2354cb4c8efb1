// File: internal/email/sender.go
package email

import (
	"context"
	"fmt"

	"clinic_backend/internal/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Message is one outgoing email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	BCCAdmin bool
}

// Sender delivers email best-effort. Implementations must treat delivery as a
// side channel: callers never fail a request because a send failed.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// GomailSender sends mail over SMTP with a transport fallback: implicit TLS
// on 465 first, then STARTTLS on 587. Some hosting providers block one of the
// two ports, so both are tried before giving up.
type GomailSender struct {
	cfg    *config.Config
	logger *zap.Logger
}

var _ Sender = (*GomailSender)(nil)

// NewGomailSender creates a new SMTP sender.
func NewGomailSender(cfg *config.Config, logger *zap.Logger) *GomailSender {
	return &GomailSender{cfg: cfg, logger: logger.Named("EmailSender")}
}

var transportConfigs = []struct {
	port int
	ssl  bool
}{
	{port: 465, ssl: true},
	{port: 587, ssl: false},
}

// Send delivers a single message, trying each transport configuration in turn.
func (s *GomailSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.EmailUser == "" || s.cfg.EmailPass == "" {
		return fmt.Errorf("email transport not configured")
	}
	if msg.To == "" {
		return fmt.Errorf("no email recipient specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.EmailUser, "Madhuri Nidan Kendra")
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	if msg.BCCAdmin && s.cfg.AdminEmail != "" {
		m.SetHeader("Bcc", s.cfg.AdminEmail)
	}

	var lastErr error
	for _, tc := range transportConfigs {
		d := gomail.NewDialer(s.cfg.SMTPHost, tc.port, s.cfg.EmailUser, s.cfg.EmailPass)
		d.SSL = tc.ssl

		err := s.sendWithContext(ctx, d, m)
		if err == nil {
			s.logger.Info("Email sent",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Int("port", tc.port),
			)
			return nil
		}
		lastErr = err
		s.logger.Warn("SMTP delivery attempt failed",
			zap.String("host", s.cfg.SMTPHost),
			zap.Int("port", tc.port),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("all SMTP configurations failed: %w", lastErr)
}

// sendWithContext runs a blocking dial-and-send under the caller's context so
// a slow SMTP host cannot hold the calling goroutine past its deadline.
func (s *GomailSender) sendWithContext(ctx context.Context, d *gomail.Dialer, m *gomail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
