package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
)

const (
	BookingConfirmedTemplate = "booking_confirmed.tmpl"
	UserWelcomeTemplate      = "user_welcome.tmpl"
)

//go:embed "templates"
var templateFS embed.FS

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

// Send renders the subject, plainBody and htmlBody blocks of the template and
// delivers the message, retrying a few times on transient SMTP failures.
func (m *SMTPMailer) Send(recipient, templateFile string, data any) error {
	msg, err := m.compose(recipient, templateFile, data)
	if err != nil {
		return err
	}

	for i := 1; i <= 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}

		if i < 3 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	return err
}

func (m *SMTPMailer) compose(recipient, templateFile string, data any) (*mail.Message, error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	subject := new(bytes.Buffer)
	if err = tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return nil, fmt.Errorf("render subject of %s: %w", templateFile, err)
	}

	plainBody := new(bytes.Buffer)
	if err = tmpl.ExecuteTemplate(plainBody, "plainBody", data); err != nil {
		return nil, fmt.Errorf("render plain body of %s: %w", templateFile, err)
	}

	htmlBody := new(bytes.Buffer)
	if err = tmpl.ExecuteTemplate(htmlBody, "htmlBody", data); err != nil {
		return nil, fmt.Errorf("render html body of %s: %w", templateFile, err)
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	return msg, nil
}

// LogMailer drops every message. It stands in for SMTP when no host is configured.
type LogMailer struct {
	Logf func(format string, args ...any)
}

func (m LogMailer) Send(recipient, templateFile string, data any) error {
	if m.Logf != nil {
		m.Logf("email %s to %s not sent: smtp is not configured", templateFile, recipient)
	}

	return nil
}
