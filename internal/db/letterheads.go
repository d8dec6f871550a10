package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const letterheadColumns = `id, company_id, storage_key, filename, file_size, active, uploaded_at`

func scanLetterhead(row pgx.Row) (*Letterhead, error) {
	var lh Letterhead
	err := row.Scan(&lh.ID, &lh.CompanyID, &lh.StorageKey, &lh.Filename, &lh.FileSize,
		&lh.Active, &lh.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan letterhead: %w", err)
	}
	return &lh, nil
}

// ActivateLetterhead deactivates every active letterhead for the company
// and inserts the new record as active, in a single transaction. A reader
// can never observe two active rows for one company.
func (db *DB) ActivateLetterhead(ctx context.Context, lh *Letterhead) (*Letterhead, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx,
		`UPDATE letterheads SET active = false WHERE company_id = $1 AND active`,
		lh.CompanyID,
	); err != nil {
		return nil, fmt.Errorf("failed to deactivate letterheads: %w", err)
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO letterheads (company_id, storage_key, filename, file_size, active)
		 VALUES ($1, $2, $3, $4, true)
		 RETURNING `+letterheadColumns,
		lh.CompanyID, lh.StorageKey, lh.Filename, lh.FileSize,
	)
	created, err := scanLetterhead(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert letterhead: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit letterhead activation: %w", err)
	}
	return created, nil
}

// GetActiveLetterhead returns the most recently uploaded active letterhead
// for a company, or nil when the company has none.
func (db *DB) GetActiveLetterhead(ctx context.Context, companyID string) (*Letterhead, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+letterheadColumns+` FROM letterheads
		 WHERE company_id = $1 AND active
		 ORDER BY uploaded_at DESC
		 LIMIT 1`,
		companyID,
	)
	return scanLetterhead(row)
}

// DeactivateLetterheads clears the active flag for a company. Returns the
// number of rows changed.
func (db *DB) DeactivateLetterheads(ctx context.Context, companyID string) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE letterheads SET active = false WHERE company_id = $1 AND active`,
		companyID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate letterheads: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListSupersededLetterheads returns inactive letterheads for a company
// uploaded before the cutoff, oldest first. Used by retention cleanup.
func (db *DB) ListSupersededLetterheads(ctx context.Context, companyID string, cutoff time.Time) ([]Letterhead, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+letterheadColumns+` FROM letterheads
		 WHERE company_id = $1 AND NOT active AND uploaded_at < $2
		 ORDER BY uploaded_at`,
		companyID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list superseded letterheads: %w", err)
	}
	defer rows.Close()

	var out []Letterhead
	for rows.Next() {
		lh, err := scanLetterhead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *lh)
	}
	return out, rows.Err()
}

// DeleteLetterhead removes a letterhead row.
func (db *DB) DeleteLetterhead(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM letterheads WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete letterhead: %w", err)
	}
	return nil
}
