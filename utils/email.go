package utils

import (
	"gopkg.in/gomail.v2"

	"github.com/careslot/booking-app/config"
)

// Mailer sends HTML mail through the configured SMTP relay. With no
// SMTP host configured it reports itself disabled and sending is a
// silent no-op for callers that check Enabled first.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.EmailUser,
		pass: cfg.EmailPass,
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.host != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}
