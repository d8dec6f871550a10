// Package letterhead manages per-company letterhead backgrounds: upload
// validation, storage, and the single-active-letterhead registry.
package letterhead

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/santoshgudeti/skillmatrix-offers/internal/db"
	"github.com/santoshgudeti/skillmatrix-offers/internal/storage"
)

// MaxFileSize caps letterhead uploads at 2 MiB.
const MaxFileSize = 2 * 1024 * 1024

var pdfSignature = []byte("%PDF")

// Registry is the subset of database operations the service needs.
type Registry interface {
	ActivateLetterhead(ctx context.Context, lh *db.Letterhead) (*db.Letterhead, error)
	GetActiveLetterhead(ctx context.Context, companyID string) (*db.Letterhead, error)
	ListSupersededLetterheads(ctx context.Context, companyID string, cutoff time.Time) ([]db.Letterhead, error)
	DeleteLetterhead(ctx context.Context, id uuid.UUID) error
	DeactivateLetterheads(ctx context.Context, companyID string) (int64, error)
}

// ValidationError reports a rejected upload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service validates and registers letterhead documents.
type Service struct {
	registry Registry
	store    storage.Store
	signTTL  time.Duration
}

// NewService creates a letterhead service. signTTL controls how long
// preview links stay valid.
func NewService(registry Registry, store storage.Store, signTTL time.Duration) *Service {
	if signTTL <= 0 {
		signTTL = time.Hour
	}
	return &Service{registry: registry, store: store, signTTL: signTTL}
}

// Activate validates the uploaded bytes, stores them, and registers the
// letterhead as the company's single active background. A previously
// active letterhead is superseded but its stored bytes are retained so
// offers already composited against it keep a valid provenance record.
func (s *Service) Activate(ctx context.Context, companyID, filename string, data []byte) (*db.Letterhead, error) {
	if err := Validate(filename, data); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("letterheads/%s/%d_%s", companyID, time.Now().Unix(), sanitizeFilename(filename))
	if err := s.store.Put(ctx, key, data, "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to store letterhead: %w", err)
	}

	lh, err := s.registry.ActivateLetterhead(ctx, &db.Letterhead{
		CompanyID:  companyID,
		StorageKey: key,
		Filename:   filename,
		FileSize:   int64(len(data)),
	})
	if err != nil {
		// Best-effort: do not leave an orphaned object behind.
		if rmErr := s.store.Remove(ctx, key); rmErr != nil {
			log.Printf("letterhead: failed to remove orphaned object %s: %v", key, rmErr)
		}
		return nil, fmt.Errorf("failed to register letterhead: %w", err)
	}

	log.Printf("letterhead: activated %s for company %s (%d bytes)", lh.ID, companyID, lh.FileSize)
	return lh, nil
}

// GetActive returns the company's active letterhead record plus its
// bytes, or (nil, nil, nil) when the company has none.
func (s *Service) GetActive(ctx context.Context, companyID string) (*db.Letterhead, []byte, error) {
	lh, err := s.registry.GetActiveLetterhead(ctx, companyID)
	if err != nil || lh == nil {
		return nil, nil, err
	}
	data, err := s.store.Get(ctx, lh.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch letterhead %s: %w", lh.ID, err)
	}
	return lh, data, nil
}

// PreviewURL returns a signed link to the company's active letterhead,
// or "" when the company has none.
func (s *Service) PreviewURL(ctx context.Context, companyID string) (string, error) {
	lh, err := s.registry.GetActiveLetterhead(ctx, companyID)
	if err != nil || lh == nil {
		return "", err
	}
	return s.store.Sign(ctx, lh.StorageKey, s.signTTL)
}

// Deactivate clears the company's active letterhead. Future offers fall
// back to content-only output until a new upload arrives.
func (s *Service) Deactivate(ctx context.Context, companyID string) (bool, error) {
	n, err := s.registry.DeactivateLetterheads(ctx, companyID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Cleanup deletes superseded letterheads older than the retention
// window, removing both the stored object and the registry row. Returns
// the number of letterheads removed.
func (s *Service) Cleanup(ctx context.Context, companyID string, retention time.Duration) (int, error) {
	cutoff := time.Now().Add(-retention)
	superseded, err := s.registry.ListSupersededLetterheads(ctx, companyID, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, lh := range superseded {
		if err := s.store.Remove(ctx, lh.StorageKey); err != nil {
			log.Printf("letterhead: failed to remove object %s: %v", lh.StorageKey, err)
			continue
		}
		if err := s.registry.DeleteLetterhead(ctx, lh.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Validate checks an upload before it is accepted: it must carry a .pdf
// name, start with the %PDF signature, and fit the size cap.
func Validate(filename string, data []byte) error {
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return &ValidationError{Message: "letterhead must be a PDF file"}
	}
	if len(data) == 0 {
		return &ValidationError{Message: "letterhead file is empty"}
	}
	if len(data) > MaxFileSize {
		return &ValidationError{Message: fmt.Sprintf("letterhead exceeds %d byte limit", MaxFileSize)}
	}
	if !bytes.HasPrefix(data, pdfSignature) {
		return &ValidationError{Message: "letterhead is not a valid PDF document"}
	}
	return nil
}

// sanitizeFilename keeps storage keys free of path and URL hazards.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
