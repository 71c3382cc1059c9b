package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/salesdash/internal/domain"
)

func gainLossSales() []domain.Sale {
	return []domain.Sale{
		sale("Q1-1", "2024-02-10", "B", "SP1", "HOTEL", "WINE", "W-01", 2, 100, 200),
		sale("Q1-2", "2024-03-01", "K", "SP1", "HOTEL", "WINE", "W-02", 1, 50, 50),
		sale("Q2-1", "2024-05-03", "A", "SP1", "REST", "WINE", "W-01", 3, 100, 300),
		sale("Q2-2", "2024-05-20", "A", "SP2", "REST", "SPIRIT", "S-01", 1, 400, 400),
		sale("Q2-3", "2024-06-11", "K", "SP1", "HOTEL", "WINE", "W-02", 10, 50, 500),
	}
}

func TestPartition(t *testing.T) {
	sales := append(gainLossSales(), sale("BAD", "not a date", "Z", "SP1", "", "", "X", 1, 1, 1))

	periods := Partition(sales)
	require.Len(t, periods, 2)
	assert.Equal(t, "2024-Q1", periods[0].Key)
	assert.Equal(t, date(2024, 1, 1), periods[0].StartDate)
	assert.Equal(t, date(2024, 3, 31), periods[0].EndDate)
	assert.Len(t, periods[0].Sales, 2)
	assert.Equal(t, "2024-Q2", periods[1].Key)
	assert.Len(t, periods[1].Sales, 3)
}

func TestDetectGainsLosses(t *testing.T) {
	report := DetectGainsLosses(gainLossSales(), "")

	require.Len(t, report.Periods, 2)
	assert.Empty(t, report.Periods[0].Entries)

	entries := report.Periods[1].Entries
	require.Len(t, entries, 2)

	gain := entries[0]
	assert.Equal(t, "A", gain.CustomerCode)
	assert.Equal(t, domain.ChangeGain, gain.Type)
	assert.Equal(t, "2024-Q2", gain.Period)
	assert.InDelta(t, 700.0, gain.RevenueChange, 1e-9)
	require.Contains(t, gain.ItemChanges, "W-01")
	assert.InDelta(t, 3.0, gain.ItemChanges["W-01"].QuantityChange, 1e-9)

	loss := entries[1]
	assert.Equal(t, "B", loss.CustomerCode)
	assert.Equal(t, domain.ChangeLoss, loss.Type)
	assert.Equal(t, "2024-Q2", loss.Period)
	assert.InDelta(t, -200.0, loss.RevenueChange, 1e-9)
	assert.InDelta(t, -2.0, loss.ItemChanges["W-01"].QuantityChange, 1e-9)
	assert.InDelta(t, -200.0, loss.ItemChanges["W-01"].RevenueChange, 1e-9)

	assert.Equal(t, 1, report.SummaryTotals.GainCount)
	assert.Equal(t, 1, report.SummaryTotals.LossCount)
	assert.InDelta(t, 700.0, report.SummaryTotals.Gains, 1e-9)
	assert.InDelta(t, -200.0, report.SummaryTotals.Losses, 1e-9)
	assert.InDelta(t, 500.0, report.SummaryTotals.Net, 1e-9)
}

func TestDetectGainsLossesIgnoresVolumeChanges(t *testing.T) {
	report := DetectGainsLosses(gainLossSales(), "")
	for _, p := range report.Periods {
		for _, e := range p.Entries {
			assert.NotEqual(t, "K", e.CustomerCode)
		}
	}
}

func TestDetectGainsLossesSalesPersonFilter(t *testing.T) {
	report := DetectGainsLosses(gainLossSales(), "SP1")
	assert.Equal(t, "SP1", report.SalesPerson)

	entries := report.Periods[1].Entries
	require.Len(t, entries, 2)
	// Only SP1's line for A counts.
	assert.InDelta(t, 300.0, entries[0].RevenueChange, 1e-9)

	all := DetectGainsLosses(gainLossSales(), "all")
	assert.Empty(t, all.SalesPerson)
}

func TestDetectGainsLossesSinglePeriod(t *testing.T) {
	report := DetectGainsLosses(gainLossSales()[:2], "")
	require.Len(t, report.Periods, 1)
	assert.Empty(t, report.Periods[0].Entries)
	assert.Zero(t, report.SummaryTotals.GainCount)
	assert.Zero(t, report.SummaryTotals.Net)

	empty := DetectGainsLosses(nil, "")
	assert.Empty(t, empty.Periods)
}

func TestSortEntries(t *testing.T) {
	entries := []domain.GainLossEntry{
		{CustomerCode: "1", SearchName: "charlie", RevenueChange: -900, ItemChanges: map[string]*domain.ItemChange{"a": {}}},
		{CustomerCode: "2", SearchName: "Alpha", RevenueChange: 100, ItemChanges: map[string]*domain.ItemChange{"a": {}, "b": {}, "c": {}}},
		{CustomerCode: "3", SearchName: "bravo", RevenueChange: 500, ItemChanges: map[string]*domain.ItemChange{"a": {}, "b": {}}},
	}
	codes := func() []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.CustomerCode)
		}
		return out
	}

	SortEntries(entries, SortByName, false)
	assert.Equal(t, []string{"2", "3", "1"}, codes())

	SortEntries(entries, SortByRevenue, true)
	assert.Equal(t, []string{"1", "3", "2"}, codes())

	SortEntries(entries, SortByItems, false)
	assert.Equal(t, []string{"1", "3", "2"}, codes())

	SortEntries(entries, "unknown", true)
	assert.Equal(t, []string{"1", "3", "2"}, codes())
}
