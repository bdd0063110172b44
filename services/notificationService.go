package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers a transactional email. Best-effort: no retry, no
// delivery tracking. Implementations are injected so tests can
// substitute a fake.
type EmailSender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTPSender builds an EmailSender over an SMTP account.
func NewSMTPSender(host string, port int, user, pass string) EmailSender {
	return &smtpSender{host: host, port: port, user: user, pass: pass, from: user}
}

func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
