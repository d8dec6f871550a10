// Package notify delivers offer lifecycle notifications to candidates
// and HR contacts.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Delivery describes one offer notification.
type Delivery struct {
	CandidateName  string
	CandidateEmail string
	HREmail        string
	CompanyName    string
	Position       string
	DownloadURL    string
	ValidUntil     time.Time
}

// Notifier sends an offer notification. Implementations must be safe
// for concurrent use.
type Notifier interface {
	NotifyOfferSent(ctx context.Context, d Delivery) error
}

// LogNotifier writes notifications to the process log. It is the
// default when no SMTP settings are configured.
type LogNotifier struct{}

func (LogNotifier) NotifyOfferSent(_ context.Context, d Delivery) error {
	log.Printf("notify: offer for %s <%s> (%s at %s) valid until %s",
		d.CandidateName, d.CandidateEmail, d.Position, d.CompanyName,
		d.ValidUntil.Format("2006-01-02"))
	return nil
}

func candidateSubject(d Delivery) string {
	return fmt.Sprintf("Offer of Employment - %s at %s", d.Position, d.CompanyName)
}

func candidateBody(d Delivery) string {
	return fmt.Sprintf(`Dear %s,

We are pleased to extend an offer for the position of %s at %s.

Your offer letter is available here:
%s

This offer is valid until %s. Please review the attached terms and
respond before the validity date.

Best regards,
%s Recruitment Team
`, d.CandidateName, d.Position, d.CompanyName, d.DownloadURL,
		d.ValidUntil.Format("January 2, 2006"), d.CompanyName)
}

func hrSubject(d Delivery) string {
	return fmt.Sprintf("Offer dispatched: %s - %s", d.CandidateName, d.Position)
}

func hrBody(d Delivery) string {
	return fmt.Sprintf(`The offer letter for %s (%s) has been sent to %s.

Download: %s
Valid until: %s
`, d.CandidateName, d.Position, d.CandidateEmail, d.DownloadURL,
		d.ValidUntil.Format("January 2, 2006"))
}
