package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andresuchdata/salesdash/internal/domain"
)

func TestCalculateBaselineUsesPreviousYear(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	sales := append(fixtureSales(),
		sale("INV-9", "2025-01-10", "C009", "SP1", "HOTEL", "WINE", "W-01", 1, 9999, 9999),
	)

	// 2024: Jan 960, Feb 720, Mar 50.
	assert.InDelta(t, (960.0+720.0+50.0)/3, CalculateBaseline(sales, "", now), 1e-9)
	assert.InDelta(t, (690.0+200.0)/2, CalculateBaseline(sales, "SP1", now), 1e-9)
}

func TestCalculateBaselineFallsBackToCurrentYear(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, (960.0+720.0+50.0)/3, CalculateBaseline(fixtureSales(), "all", now), 1e-9)
}

func TestCalculateBaselineWithoutData(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Zero(t, CalculateBaseline(nil, "", now))
	assert.Zero(t, CalculateBaseline(fixtureSales(), "NOBODY", now))
}

func TestMonthlyTotals(t *testing.T) {
	totals := MonthlyTotals(fixtureSales(), "SP2", 2024)
	assert.Equal(t, map[string]float64{
		"2024-01": 270,
		"2024-02": 520,
		"2024-03": 50,
	}, totals)

	assert.Empty(t, MonthlyTotals(fixtureSales(), "", 2023))
	assert.Len(t, MonthlyTotals(fixtureSales(), "", 0), 3)
}

func TestRevenueInRange(t *testing.T) {
	r := domain.DateRange{Start: date(2024, 2, 1), End: date(2024, 2, 29)}
	assert.InDelta(t, 720.0, RevenueInRange(fixtureSales(), "", r), 1e-9)
	assert.InDelta(t, 200.0, RevenueInRange(fixtureSales(), "SP1", r), 1e-9)
}
