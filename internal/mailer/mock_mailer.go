package mailer

import (
	"sync"
	"time"
)

type Email struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records messages instead of sending them. Emails are sent from
// background goroutines, so tests wait for them with WaitForEmails.
type MockMailer struct {
	mu     sync.Mutex
	emails []Email
	sent   chan struct{}
}

func NewMockMailer() *MockMailer {
	return &MockMailer{
		emails: make([]Email, 0),
		sent:   make(chan struct{}, 64),
	}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	m.emails = append(m.emails, Email{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})
	m.mu.Unlock()

	select {
	case m.sent <- struct{}{}:
	default:
	}

	return nil
}

func (m *MockMailer) GetSentEmails() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()

	emails := make([]Email, len(m.emails))
	copy(emails, m.emails)
	return emails
}

// WaitForEmails blocks until at least n emails were recorded or the timeout expires.
func (m *MockMailer) WaitForEmails(n int, timeout time.Duration) []Email {
	deadline := time.After(timeout)

	for {
		if emails := m.GetSentEmails(); len(emails) >= n {
			return emails
		}

		select {
		case <-m.sent:
		case <-deadline:
			return m.GetSentEmails()
		}
	}
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = make([]Email, 0)
}
