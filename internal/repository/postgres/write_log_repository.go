package postgres

import (
	"context"
	"fmt"
)

type writeLogRepository struct {
	db *DB
}

func NewWriteLogRepository(db *DB) *writeLogRepository {
	return &writeLogRepository{db: db}
}

// Claim records the idempotency key and reports whether it was new.
func (r *writeLogRepository) Claim(ctx context.Context, key, sheetName string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sheet_writes (idempotency_key, sheet_name)
		VALUES ($1, $2)
		ON CONFLICT (idempotency_key) DO NOTHING
	`, key, sheetName)
	if err != nil {
		return false, fmt.Errorf("failed to record sheet write: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// Release forgets a key so the row can be sent again.
func (r *writeLogRepository) Release(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sheet_writes WHERE idempotency_key = $1`, key); err != nil {
		return fmt.Errorf("failed to release sheet write: %w", err)
	}
	return nil
}
