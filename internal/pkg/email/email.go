package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/hrsuite/hr-backend-go/internal/config"
)

const maxRetries = 3

// Mailer delivers a plain-text message to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// NewMailer selects the delivery backend from configuration. The
// simulated backend only logs, which is the default outside production.
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Mode == "smtp" {
		return &smtpMailer{cfg: cfg}
	}
	return &simulatedMailer{from: cfg.From}
}

type simulatedMailer struct {
	from string
}

func (m *simulatedMailer) Send(to, subject, body string) error {
	slog.Info("Simulated email dispatch",
		"from", m.from,
		"to", to,
		"subject", subject,
		"body_length", len(body),
	)
	return nil
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func (m *smtpMailer) Send(to, subject, body string) error {
	from := m.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + body)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
