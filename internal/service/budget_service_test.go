package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/salesdash/internal/analytics"
	"github.com/andresuchdata/salesdash/internal/domain"
	"github.com/andresuchdata/salesdash/internal/repository"
)

func budgetSales() []domain.Sale {
	return []domain.Sale{
		sale("INV-1", "2024-04-03", "C001", "SP1", "HOTEL", "WINE", "W-01", 1, 100, 100),
		sale("INV-2", "2024-04-10", "C002", "SP2", "REST", "WINE", "W-01", 1, 50, 50),
		sale("INV-3", "2023-04-20", "C001", "SP1", "HOTEL", "WINE", "W-01", 1, 80, 80),
	}
}

func newBudgetService(t *testing.T, sheetWriter *SheetService) (*BudgetService, repository.BudgetRepository, repository.ActualRepository) {
	t.Helper()
	budgets := repository.NewMemoryFiguresRepository()
	actuals := repository.NewMemoryFiguresRepository()
	svc := NewBudgetService(budgets, actuals, storeWith(budgetSales(), nil), sheetWriter, time.UTC)
	svc.now = fixedClock(time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC))
	return svc, budgets, actuals
}

func TestBudgetReport(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBudgetService(t, nil)

	_, err := svc.Upsert(ctx, "budget", "2024-2025", domain.MonthlyFigures{domain.April: 300, domain.May: 500})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "actual", "2023-2024", domain.MonthlyFigures{domain.April: 90})
	require.NoError(t, err)

	report, err := svc.Report(ctx, "2024-2025", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-2025", report.FiscalYear)
	require.Len(t, report.Lines, 12)

	april := report.Lines[0]
	assert.Equal(t, domain.April, april.Month)
	assert.Equal(t, "2024-04", april.MonthKey)
	assert.True(t, april.Partial)
	assert.InDelta(t, 150.0, april.Budget, 1e-9)
	assert.InDelta(t, 150.0, april.Actual, 1e-9)
	assert.Equal(t, ActualSourceSales, april.ActualSource)
	assert.InDelta(t, 90.0, april.LastYearActual, 1e-9)
	assert.InDelta(t, 0.0, april.VsBudget.Amount, 1e-9)
	assert.InDelta(t, 60.0, april.VsLastYear.Amount, 1e-9)
	assert.InDelta(t, 60.0/90.0*100, april.VsLastYear.Percent, 1e-9)

	may := report.Lines[1]
	assert.False(t, may.Partial)
	assert.InDelta(t, 500.0, may.Budget, 1e-9)
	assert.Zero(t, may.Actual)
	assert.InDelta(t, -100.0, may.VsBudget.Percent, 1e-9)

	march := report.Lines[11]
	assert.Equal(t, "2025-03", march.MonthKey)
	assert.Zero(t, march.VsBudget.Percent)

	assert.InDelta(t, 150.0, report.YTDBudget, 1e-9)
	assert.InDelta(t, 150.0, report.YTDActual, 1e-9)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), report.YTDRange.Start)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), report.YTDRange.End)
	assert.InDelta(t, 80.0, report.Baseline, 1e-9)
}

func TestBudgetReportManualActualAndSalesPerson(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBudgetService(t, nil)

	_, err := svc.Upsert(ctx, "actual", "2024-2025", domain.MonthlyFigures{domain.April: 1000})
	require.NoError(t, err)

	report, err := svc.Report(ctx, "", "SP1")
	require.NoError(t, err)
	assert.Equal(t, "2024-2025", report.FiscalYear)

	april := report.Lines[0]
	assert.InDelta(t, 1000.0, april.Actual, 1e-9)
	assert.Equal(t, ActualSourceManual, april.ActualSource)
	// No stored last-year actual: falls back to SP1's sales of April 2023.
	assert.InDelta(t, 80.0, april.LastYearActual, 1e-9)
	assert.Zero(t, april.Budget)
	assert.Zero(t, april.VsBudget.Percent)
}

func TestBudgetReportPastFiscalYear(t *testing.T) {
	svc, _, _ := newBudgetService(t, nil)

	report, err := svc.Report(context.Background(), "2023-2024", "")
	require.NoError(t, err)
	for _, l := range report.Lines {
		assert.False(t, l.Partial)
	}
	assert.InDelta(t, 80.0, report.YTDActual, 1e-9)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), report.YTDRange.End)
}

func TestBudgetReportLateInFiscalYear(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBudgetService(t, nil)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	_, err := svc.Upsert(ctx, "budget", "2024-2025", domain.MonthlyFigures{domain.April: 300, domain.March: 310})
	require.NoError(t, err)

	report, err := svc.Report(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-2025", report.FiscalYear)
	assert.Equal(t, analytics.YTDDateRange(now), report.YTDRange)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), report.YTDRange.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), report.YTDRange.End)

	require.Len(t, report.Lines, 12)
	for _, l := range report.Lines[:11] {
		assert.False(t, l.Partial, l.Month)
	}
	march := report.Lines[11]
	assert.Equal(t, domain.March, march.Month)
	assert.Equal(t, "2025-03", march.MonthKey)
	assert.True(t, march.Partial)
	assert.InDelta(t, 100.0, march.Budget, 1e-9)
	assert.InDelta(t, 300.0, report.Lines[0].Budget, 1e-9)
}

func TestBudgetReportFutureFiscalYear(t *testing.T) {
	svc, _, _ := newBudgetService(t, nil)

	report, err := svc.Report(context.Background(), "2030-2031", "")
	require.NoError(t, err)
	assert.Zero(t, report.YTDBudget)
	assert.True(t, report.YTDRange.IsZero())
}

func TestBudgetServiceValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBudgetService(t, nil)

	_, err := svc.Report(ctx, "2024-2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidFiscalYear)

	_, err = svc.Upsert(ctx, "forecast", "2024-2025", domain.MonthlyFigures{domain.April: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Get(ctx, "budget", "2024-2025")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = ParseMonthlyInput(map[string]float64{"Smarch": 1})
	assert.ErrorIs(t, err, domain.ErrInvalidFiscalMonth)

	_, err = ParseMonthlyInput(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	months, err := ParseMonthlyInput(map[string]float64{"april": 10, "MAY": 20})
	require.NoError(t, err)
	assert.Equal(t, domain.MonthlyFigures{domain.April: 10, domain.May: 20}, months)
}

func TestBudgetUpsertMirrorsToSheet(t *testing.T) {
	ctx := context.Background()
	writer := &recordingWriter{}
	svc, _, _ := newBudgetService(t, NewSheetService(writer, nil))

	rec, err := svc.Upsert(ctx, "budget", "2024-2025", domain.MonthlyFigures{domain.May: 500, domain.April: 300})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)

	rows := writer.rows[BudgetSheet]
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-2025", "April", "300.00", "1"}, rows[0])
	assert.Equal(t, []string{"2024-2025", "May", "500.00", "1"}, rows[1])

	list, err := svc.List(ctx, "budgets")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestBudgetUpsertSheetFailureIsNotFatal(t *testing.T) {
	writer := &recordingWriter{err: errors.New("offline")}
	svc, _, _ := newBudgetService(t, NewSheetService(writer, nil))

	_, err := svc.Upsert(context.Background(), "actual", "2024-2025", domain.MonthlyFigures{domain.May: 5})
	assert.NoError(t, err)
}

func TestBudgetExportReport(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBudgetService(t, nil)

	res, err := svc.ExportReport(ctx, "2024-2025", "")
	require.NoError(t, err)
	assert.Equal(t, "budget-2024-2025.xlsx", res.Filename)
	assert.NotEmpty(t, res.Data)
	assert.Empty(t, res.ArchiveKey)

	_, err = svc.ExportReport(ctx, "2024", "")
	assert.ErrorIs(t, err, domain.ErrInvalidFiscalYear)
}
