// Package mailer delivers the transactional emails the workflow triggers.
// Delivery is always dispatched through Dispatcher: a failed send is logged
// and never fails the operation that triggered it.
package mailer

import (
	"gopkg.in/gomail.v2"

	"github.com/blucialabs/backend/internal/config"
)

// Message is one outgoing email with both HTML and plain-text bodies.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends a single message synchronously.
type Mailer interface {
	Send(msg Message) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	gm.AddAlternative("text/html", msg.HTML)
	return m.dialer.DialAndSend(gm)
}
