package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDelivery() Delivery {
	return Delivery{
		CandidateName:  "Priya Sharma",
		CandidateEmail: "priya@example.com",
		HREmail:        "hr@acme.example.com",
		CompanyName:    "Acme Corp",
		Position:       "Backend Engineer",
		DownloadURL:    "https://files.example.com/offers/abc.pdf",
		ValidUntil:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestLogNotifier(t *testing.T) {
	err := LogNotifier{}.NotifyOfferSent(context.Background(), sampleDelivery())
	assert.NoError(t, err)
}

func TestCandidateMessage(t *testing.T) {
	d := sampleDelivery()

	subject := candidateSubject(d)
	assert.Contains(t, subject, "Backend Engineer")
	assert.Contains(t, subject, "Acme Corp")

	body := candidateBody(d)
	assert.Contains(t, body, "Dear Priya Sharma")
	assert.Contains(t, body, d.DownloadURL)
	assert.Contains(t, body, "September 15, 2026")
}

func TestHRMessage(t *testing.T) {
	d := sampleDelivery()

	assert.Contains(t, hrSubject(d), "Priya Sharma")

	body := hrBody(d)
	assert.Contains(t, body, "priya@example.com")
	assert.Contains(t, body, d.DownloadURL)
}

func TestNewSMTPNotifier(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPConfig{})
	require.Error(t, err)

	n, err := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", From: "offers@acme.example.com"})
	require.NoError(t, err)
	assert.Equal(t, 587, n.cfg.Port)

	n, err = NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", From: "offers@acme.example.com", Port: 2525})
	require.NoError(t, err)
	assert.Equal(t, 2525, n.cfg.Port)
}
