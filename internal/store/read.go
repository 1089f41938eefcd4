package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/stoich/internal/ir"
)

const recordColumns = `seq, id, run_id, reagents, products, scale, coefficients, balanced, error_kind, error_message, outcome_hash`

// ReadRecord returns the most recent record for an equation ID.
// Returns ErrNotFound if the equation was never stored.
func (s *Store) ReadRecord(ctx context.Context, id string) (*ir.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM balance_records
		WHERE id = ?
		ORDER BY seq DESC
		LIMIT 1
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", id, err)
	}
	return rec, nil
}

// ListRecords returns the latest limit records, oldest first.
// A limit <= 0 returns every record.
//
// Ordering is deterministic: ORDER BY seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]*ir.Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM (
			SELECT `+recordColumns+`
			FROM balance_records
			ORDER BY seq DESC
			LIMIT ?
		)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	return collect(rows)
}

// ReadRun returns every record written under runID.
func (s *Store) ReadRun(ctx context.Context, runID string) ([]*ir.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM balance_records
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]*ir.Record, error) {
	defer rows.Close()

	records := []*ir.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*ir.Record, error) {
	var (
		rec       ir.Record
		coefsJSON string
	)
	err := sc.Scan(
		&rec.Seq,
		&rec.ID,
		&rec.RunID,
		&rec.Reagents,
		&rec.Products,
		&rec.Scale,
		&coefsJSON,
		&rec.Balanced,
		&rec.ErrorKind,
		&rec.ErrorMessage,
		&rec.OutcomeHash,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(coefsJSON), &rec.Coefficients); err != nil {
		return nil, fmt.Errorf("decode coefficients: %w", err)
	}
	if len(rec.Coefficients) == 0 {
		rec.Coefficients = nil
	}
	return &rec, nil
}
