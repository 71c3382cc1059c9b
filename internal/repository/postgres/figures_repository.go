package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/salesdash/internal/domain"
	"github.com/andresuchdata/salesdash/internal/repository"
)

// Kinds of fiscal figures stored in fiscal_figures.
const (
	KindBudget = "budget"
	KindActual = "actual"
)

type figuresRepository struct {
	db   *DB
	kind string
}

func NewBudgetRepository(db *DB) *figuresRepository {
	return &figuresRepository{db: db, kind: KindBudget}
}

func NewActualRepository(db *DB) *figuresRepository {
	return &figuresRepository{db: db, kind: KindActual}
}

type figuresRow struct {
	FiscalYear   string    `db:"fiscal_year"`
	Months       []byte    `db:"months"`
	Total        float64   `db:"total"`
	Version      int       `db:"version"`
	LastModified time.Time `db:"last_modified"`
}

func (row figuresRow) toDomain() (*domain.FiscalFigures, error) {
	months := domain.MonthlyFigures{}
	if len(row.Months) > 0 {
		if err := json.Unmarshal(row.Months, &months); err != nil {
			return nil, fmt.Errorf("decode months of %s: %w", row.FiscalYear, err)
		}
	}
	return &domain.FiscalFigures{
		FiscalYear:   row.FiscalYear,
		Months:       months,
		Total:        row.Total,
		Version:      row.Version,
		LastModified: row.LastModified.UTC(),
	}, nil
}

func (r *figuresRepository) Get(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalFigures, error) {
	query := `
		SELECT fiscal_year, months, total, version, last_modified
		FROM fiscal_figures
		WHERE kind = $1 AND fiscal_year = $2
	`

	var row figuresRow
	if err := r.db.GetContext(ctx, &row, query, r.kind, fy.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s %s: %w", r.kind, fy, err)
	}
	return row.toDomain()
}

func (r *figuresRepository) List(ctx context.Context) ([]*domain.FiscalFigures, error) {
	query := `
		SELECT fiscal_year, months, total, version, last_modified
		FROM fiscal_figures
		WHERE kind = $1
		ORDER BY fiscal_year
	`

	var rows []figuresRow
	if err := r.db.SelectContext(ctx, &rows, query, r.kind); err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", r.kind, err)
	}

	out := make([]*domain.FiscalFigures, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *figuresRepository) Upsert(ctx context.Context, fy domain.FiscalYear, months domain.MonthlyFigures) (*domain.FiscalFigures, error) {
	if err := repository.ValidateMonths(months); err != nil {
		return nil, err
	}

	var result *domain.FiscalFigures
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		existing := domain.MonthlyFigures{}
		var (
			raw     []byte
			version int
		)

		err := tx.QueryRowContext(ctx, `
			SELECT months, version
			FROM fiscal_figures
			WHERE kind = $1 AND fiscal_year = $2
			FOR UPDATE
		`, r.kind, fy.String()).Scan(&raw, &version)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to lock %s %s: %w", r.kind, fy, err)
		default:
			if err := json.Unmarshal(raw, &existing); err != nil {
				return fmt.Errorf("decode months of %s: %w", fy, err)
			}
		}

		merged := existing.Merge(months)
		payload, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encode months: %w", err)
		}

		rec := &domain.FiscalFigures{
			FiscalYear:   fy.String(),
			Months:       merged,
			Total:        merged.Total(),
			Version:      version + 1,
			LastModified: time.Now().UTC(),
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO fiscal_figures (kind, fiscal_year, months, total, version, last_modified)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (kind, fiscal_year)
			DO UPDATE SET
				months = EXCLUDED.months,
				total = EXCLUDED.total,
				version = EXCLUDED.version,
				last_modified = EXCLUDED.last_modified
		`, r.kind, rec.FiscalYear, payload, rec.Total, rec.Version, rec.LastModified)
		if err != nil {
			return fmt.Errorf("failed to upsert %s %s: %w", r.kind, fy, err)
		}

		result = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
