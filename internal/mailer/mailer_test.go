package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeBookingConfirmed(t *testing.T) {
	m := NewSMTPMailer("localhost", 2525, "", "", "CineTrack <no-reply@cinetrack.local>")

	data := map[string]any{
		"name":       "Jane",
		"movieTitle": "Inception",
		"theater":    "Hall 1",
		"startTime":  "2025-05-04 18:30",
		"seatCode":   "C4",
		"reference":  "5f1e3c1a-9d1b-4c53-8a34-8f0f5d9b6a11",
	}

	msg, err := m.compose("jane@example.com", BookingConfirmedTemplate, data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Your seat C4 is booked"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"jane@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"CineTrack <no-reply@cinetrack.local>"}, msg.GetHeader("From"))
}

func TestComposeUnknownTemplate(t *testing.T) {
	m := NewSMTPMailer("localhost", 2525, "", "", "no-reply@cinetrack.local")

	_, err := m.compose("jane@example.com", "missing.tmpl", nil)

	assert.Error(t, err)
}

func TestMockMailerWaitForEmails(t *testing.T) {
	m := NewMockMailer()

	go func() {
		_ = m.Send("jane@example.com", UserWelcomeTemplate, nil)
	}()

	emails := m.WaitForEmails(1, time.Second)

	require.Len(t, emails, 1)
	assert.Equal(t, UserWelcomeTemplate, emails[0].TemplateFile)

	m.Reset()
	assert.Empty(t, m.GetSentEmails())
}
