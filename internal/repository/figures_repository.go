package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/salesdash/internal/domain"
)

var ErrNotFound = errors.New("record not found")

// FiguresRepository persists one FiscalFigures record per fiscal year.
// Upsert merges the given months into the stored record, recomputes the
// total, increments the version and stamps the modification time.
type FiguresRepository interface {
	Get(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalFigures, error)
	List(ctx context.Context) ([]*domain.FiscalFigures, error)
	Upsert(ctx context.Context, fy domain.FiscalYear, months domain.MonthlyFigures) (*domain.FiscalFigures, error)
}

// BudgetRepository stores admin entered budgets.
type BudgetRepository interface {
	FiguresRepository
}

// ActualRepository stores admin entered actuals.
type ActualRepository interface {
	FiguresRepository
}

// ValidateMonths rejects month keys that are not canonical fiscal month
// names. Case variants such as "april" are rejected too.
func ValidateMonths(months domain.MonthlyFigures) error {
	for m := range months {
		if m.Index() < 0 {
			return fmt.Errorf("%w: %q", domain.ErrInvalidFiscalMonth, string(m))
		}
	}
	return nil
}
