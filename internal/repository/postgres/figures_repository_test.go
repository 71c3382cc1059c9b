package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/salesdash/internal/config"
	"github.com/andresuchdata/salesdash/internal/domain"
	"github.com/andresuchdata/salesdash/internal/repository"
)

func integrationDB(t *testing.T) *DB {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 with DB_* variables to run against postgres")
	}

	cfg := config.Load()
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrations, err := Migrations()
	require.NoError(t, err)
	for _, m := range migrations {
		_, err := db.Exec(m.SQL)
		require.NoError(t, err, m.Name)
	}
	_, err = db.Exec(`DELETE FROM fiscal_figures WHERE fiscal_year = '1999-2000'`)
	require.NoError(t, err)

	return Wrap(db)
}

func TestFiguresRepositoryUpsertMerges(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	fy := domain.FiscalYear{StartYear: 1999}

	budgets := NewBudgetRepository(db)
	actuals := NewActualRepository(db)

	_, err := budgets.Get(ctx, fy)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	rec, err := budgets.Upsert(ctx, fy, domain.MonthlyFigures{domain.April: 100, domain.May: 200})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)

	rec, err = budgets.Upsert(ctx, fy, domain.MonthlyFigures{domain.May: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Version)
	assert.InDelta(t, 120.0, rec.Total, 1e-9)

	got, err := budgets.Get(ctx, fy)
	require.NoError(t, err)
	assert.Equal(t, domain.MonthlyFigures{domain.April: 100, domain.May: 20}, got.Months)
	assert.Equal(t, 2, got.Version)

	// Budgets and actuals do not share records.
	_, err = actuals.Get(ctx, fy)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFiguresRepositoryRejectsUnknownMonth(t *testing.T) {
	repo := NewBudgetRepository(nil)
	_, err := repo.Upsert(context.Background(), domain.FiscalYear{StartYear: 2024}, domain.MonthlyFigures{"Smarch": 1})
	assert.ErrorIs(t, err, domain.ErrInvalidFiscalMonth)
}
