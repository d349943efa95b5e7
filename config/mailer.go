package config

import (
	"crypto/tls"
	"errors"
	"io"

	mail "github.com/go-mail/mail/v2"
)

// ErrMailerNotConfigured is returned when SMTP_HOST or SMTP_FROM is empty.
var ErrMailerNotConfigured = errors.New("smtp not configured (SMTP_HOST/SMTP_FROM)")

// Attachment is an in-memory file attached to an outgoing message.
type Attachment struct {
	Name string
	Data []byte
}

type Mailer struct {
	settings SMTPSettings
	send     func(*mail.Message) error
}

func NewMailer(settings SMTPSettings) *Mailer {
	m := &Mailer{settings: settings}
	m.send = m.dialAndSend
	return m
}

// Configured reports whether the minimum SMTP settings are present.
func (m *Mailer) Configured() bool {
	return m.settings.Host != "" && m.settings.From != ""
}

// SendMail sends an HTML message to the recipients with optional attachments.
// An empty recipient list is a no-op.
func (m *Mailer) SendMail(to []string, subject, html string, attachments ...Attachment) error {
	if len(to) == 0 {
		return nil
	}
	if !m.Configured() {
		return ErrMailerNotConfigured
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.settings.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	for _, a := range attachments {
		data := a.Data
		msg.Attach(a.Name, mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	return m.send(msg)
}

func (m *Mailer) dialAndSend(msg *mail.Message) error {
	port := m.settings.Port
	if port == 0 {
		port = 587
	}
	d := mail.NewDialer(m.settings.Host, port, m.settings.User, m.settings.Pass)

	// STARTTLS on 587 is mandatory for the hosted relays we use.
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         m.settings.Host,
		InsecureSkipVerify: m.settings.SkipTLSVerify, // dev only
	}

	return d.DialAndSend(msg)
}
