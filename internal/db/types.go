package db

import (
	"time"

	"github.com/google/uuid"
)

// Offer status lifecycle. The pipeline only ever writes StatusGenerated;
// every later transition is driven by an external event (email dispatch
// confirmation, candidate response, HR soft-delete).
const (
	StatusDraft     = "draft"
	StatusGenerated = "generated"
	StatusSent      = "sent"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusDeleted   = "deleted"
)

// allowedTransitions maps a status to the statuses it may move to.
// StatusDeleted is reachable from anywhere as a soft-delete terminal.
var allowedTransitions = map[string][]string{
	StatusDraft:     {StatusGenerated},
	StatusGenerated: {StatusSent},
	StatusSent:      {StatusAccepted, StatusRejected},
}

// CanTransition reports whether an offer may move from one status to
// another.
func CanTransition(from, to string) bool {
	if to == StatusDeleted {
		return from != StatusDeleted
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known offer status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusGenerated, StatusSent, StatusAccepted, StatusRejected, StatusDeleted:
		return true
	}
	return false
}

// Offer is the persistent metadata record for one generated offer letter.
type Offer struct {
	ID             uuid.UUID  `json:"id"`
	CompanyID      string     `json:"company_id"`
	CandidateID    string     `json:"candidate_id"`
	LetterheadID   *uuid.UUID `json:"letterhead_id,omitempty"`
	StorageKey     string     `json:"storage_key"`
	Filename       string     `json:"filename"`
	FileSize       int64      `json:"file_size"`
	CandidateName  string     `json:"candidate_name"`
	CandidateEmail string     `json:"candidate_email"`
	Position       string     `json:"position"`
	GrossAnnual    float64    `json:"gross_annual"`
	Status         string     `json:"status"`
	Facts          []byte     `json:"-"` // full OfferFacts JSON as submitted
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
}

// Letterhead is the per-company background document record. At most one
// row per company has Active set.
type Letterhead struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  string    `json:"company_id"`
	StorageKey string    `json:"storage_key"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	Active     bool      `json:"active"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// User is an HR account that may call the API. CompanyID scopes every
// offer and letterhead the account can touch.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CompanyID    string    `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
}
