package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const offerColumns = `id, company_id, candidate_id, letterhead_id, storage_key, filename,
	file_size, candidate_name, candidate_email, position, gross_annual, status, facts,
	created_at, updated_at, sent_at`

func scanOffer(row pgx.Row) (*Offer, error) {
	var o Offer
	err := row.Scan(&o.ID, &o.CompanyID, &o.CandidateID, &o.LetterheadID, &o.StorageKey,
		&o.Filename, &o.FileSize, &o.CandidateName, &o.CandidateEmail, &o.Position,
		&o.GrossAnnual, &o.Status, &o.Facts, &o.CreatedAt, &o.UpdatedAt, &o.SentAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan offer: %w", err)
	}
	return &o, nil
}

// CreateOffer inserts a new offer record and returns it.
func (db *DB) CreateOffer(ctx context.Context, o *Offer) (*Offer, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO offer_letters (company_id, candidate_id, letterhead_id, storage_key,
			filename, file_size, candidate_name, candidate_email, position, gross_annual,
			status, facts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+offerColumns,
		o.CompanyID, o.CandidateID, o.LetterheadID, o.StorageKey, o.Filename, o.FileSize,
		o.CandidateName, o.CandidateEmail, o.Position, o.GrossAnnual, o.Status, o.Facts,
	)
	created, err := scanOffer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return created, nil
}

// GetOffer retrieves an offer scoped to a company, or nil when absent.
// Soft-deleted offers are not returned.
func (db *DB) GetOffer(ctx context.Context, id uuid.UUID, companyID string) (*Offer, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM offer_letters
		 WHERE id = $1 AND company_id = $2 AND status <> $3`,
		id, companyID, StatusDeleted,
	)
	return scanOffer(row)
}

// ListOffers returns a page of a company's offers, newest first. status
// filters when non-empty; soft-deleted offers are always excluded.
func (db *DB) ListOffers(ctx context.Context, companyID, status string, page, limit int) ([]Offer, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := status
	if filter == "" {
		filter = "%"
	}

	var total int
	err := db.pool.QueryRow(ctx,
		`SELECT count(*) FROM offer_letters
		 WHERE company_id = $1 AND status LIKE $2 AND status <> $3`,
		companyID, filter, StatusDeleted,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count offers: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+offerColumns+` FROM offer_letters
		 WHERE company_id = $1 AND status LIKE $2 AND status <> $3
		 ORDER BY created_at DESC
		 LIMIT $4 OFFSET $5`,
		companyID, filter, StatusDeleted, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, 0, err
		}
		offers = append(offers, *o)
	}
	return offers, total, rows.Err()
}

// UpdateOfferStatus moves an offer through its lifecycle. It enforces the
// allowed transitions and stamps sent_at when the offer is marked sent.
// Returns the updated offer, or nil when the offer does not exist.
func (db *DB) UpdateOfferStatus(ctx context.Context, id uuid.UUID, companyID, status string) (*Offer, error) {
	current, err := db.GetOffer(ctx, id, companyID)
	if err != nil || current == nil {
		return nil, err
	}
	if !CanTransition(current.Status, status) {
		return nil, fmt.Errorf("invalid status transition %s -> %s", current.Status, status)
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE offer_letters
		 SET status = $1,
		     sent_at = CASE WHEN $1 = 'sent' THEN now() ELSE sent_at END,
		     updated_at = now()
		 WHERE id = $2 AND company_id = $3
		 RETURNING `+offerColumns,
		status, id, companyID,
	)
	return scanOffer(row)
}

// SoftDeleteOffer marks an offer deleted. The stored bytes are retained.
func (db *DB) SoftDeleteOffer(ctx context.Context, id uuid.UUID, companyID string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE offer_letters SET status = $1, updated_at = now()
		 WHERE id = $2 AND company_id = $3 AND status <> $1`,
		StatusDeleted, id, companyID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete offer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
