package email

import (
	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// Notifier sends outbound email. All sends in this application are
// best-effort: callers dispatch through Dispatch and log-only on failure.
type Notifier interface {
	Send(to, subject, htmlBody string) error
}

// SMTPConfig holds configuration for the SMTP server.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPNotifier implements Notifier over gomail.
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPNotifier creates a new SMTP-backed Notifier.
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{config: config, logger: logger}
}

// Send delivers one HTML email. When SMTP credentials are not configured the
// message is logged instead of sent, so development setups work without a
// mail server.
func (n *SMTPNotifier) Send(to, subject, htmlBody string) error {
	if n.config.Username == "" || n.config.Password == "" {
		n.logger.Warn().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.config.FromEmail, n.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(n.config.Host, n.config.Port, n.config.Username, n.config.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return err
	}

	n.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

// Dispatch sends asynchronously and reports the outcome on the returned
// channel. The triggering operation never waits on it; tests may. The channel
// is buffered so an unread result doesn't leak the goroutine.
func Dispatch(n Notifier, to, subject, htmlBody string) <-chan error {
	result := make(chan error, 1)
	go func() {
		result <- n.Send(to, subject, htmlBody)
		close(result)
	}()
	return result
}
