package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/VCL-tt/BK-VenComp/pkg/logger"
)

// Mailer sends plain-text mail
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.From, to, subject, body))

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes mail to the log instead of sending it, for development
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	logger.Logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("Mail (log only)")
	return nil
}
