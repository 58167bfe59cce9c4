package notify

import (
	"gopkg.in/gomail.v2"

	"github.com/drivebook/car-rental-api/internal/config"
)

// Mailer sends booking lifecycle e-mails over SMTP. Disabled (no-op) when
// SMTP_HOST is unset, so local setups work without a mail server.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return &Mailer{}
	}

	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.dialer == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
