package store

import (
	"context"
	"fmt"

	"github.com/roach88/stoich/internal/ir"
)

// WriteRecord inserts rec and sets rec.Seq. Writing the same (ID, RunID) twice
// is a no-op that reports the seq of the existing row.
//
// rec.OutcomeHash is computed here when empty.
func (s *Store) WriteRecord(ctx context.Context, rec *ir.Record) error {
	if rec.ID == "" || rec.RunID == "" {
		return fmt.Errorf("write record: id and run_id are required")
	}
	if rec.OutcomeHash == "" {
		h, err := ir.OutcomeHash(rec)
		if err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		rec.OutcomeHash = h
	}

	coefs := rec.Coefficients
	if coefs == nil {
		coefs = []string{}
	}
	coefsJSON, err := ir.MarshalCanonical(coefs)
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO balance_records
		(id, run_id, reagents, products, scale, coefficients, balanced, error_kind, error_message, outcome_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, run_id) DO NOTHING
	`,
		rec.ID,
		rec.RunID,
		rec.Reagents,
		rec.Products,
		rec.Scale,
		string(coefsJSON),
		rec.Balanced,
		rec.ErrorKind,
		rec.ErrorMessage,
		rec.OutcomeHash,
	)
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT seq FROM balance_records WHERE id = ? AND run_id = ?`,
		rec.ID, rec.RunID,
	).Scan(&rec.Seq); err != nil {
		return fmt.Errorf("write record: read seq: %w", err)
	}
	return nil
}
