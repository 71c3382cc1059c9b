package analytics

import (
	"sort"
	"strings"

	"github.com/andresuchdata/salesdash/internal/domain"
)

// Partition splits sales into calendar quarters ordered by start date. Sales
// with an unparseable date are left out.
func Partition(sales []domain.Sale) []domain.Period {
	byKey := make(map[string]*domain.Period)
	for _, s := range sales {
		d, ok := ParseDate(s.Date)
		if !ok {
			continue
		}
		key := QuarterKey(d)
		p, ok := byKey[key]
		if !ok {
			start, end := QuarterBounds(d)
			p = &domain.Period{Key: key, StartDate: start, EndDate: end}
			byKey[key] = p
		}
		p.Sales = append(p.Sales, s)
	}

	periods := make([]domain.Period, 0, len(byKey))
	for _, p := range byKey {
		periods = append(periods, *p)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
	return periods
}

// DetectGainsLosses compares the set of customers buying in each quarter with
// the quarter before it. A customer only in the later quarter is a gain,
// valued from that quarter's lines. A customer only in the earlier quarter is
// a loss, valued from the earlier quarter's lines with negative deltas and
// reported under the later quarter. Customers present in both quarters are not
// reported, whatever their change in volume.
//
// The first period never has entries; it only serves as the reference for the
// second.
func DetectGainsLosses(sales []domain.Sale, salesPerson string) domain.GainLossReport {
	filtered := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if MatchesSalesPerson(s, salesPerson) {
			filtered = append(filtered, s)
		}
	}

	periods := Partition(filtered)
	report := domain.GainLossReport{
		Periods: make([]domain.GainLossPeriod, 0, len(periods)),
	}
	if salesPerson != "" && !strings.EqualFold(salesPerson, AllSalesPersons) {
		report.SalesPerson = salesPerson
	}

	for i, current := range periods {
		entry := domain.GainLossPeriod{Period: current, Entries: []domain.GainLossEntry{}}
		if i > 0 {
			previous := periods[i-1]
			entry.Entries = comparePeriods(previous, current)
		}
		for _, e := range entry.Entries {
			switch e.Type {
			case domain.ChangeGain:
				report.SummaryTotals.Gains += e.RevenueChange
				report.SummaryTotals.GainCount++
			case domain.ChangeLoss:
				report.SummaryTotals.Losses += e.RevenueChange
				report.SummaryTotals.LossCount++
			}
		}
		report.Periods = append(report.Periods, entry)
	}
	report.SummaryTotals.Net = report.SummaryTotals.Gains + report.SummaryTotals.Losses

	return report
}

func comparePeriods(previous, current domain.Period) []domain.GainLossEntry {
	prevCustomers := customerLines(previous.Sales)
	currCustomers := customerLines(current.Sales)

	var gains, losses []domain.GainLossEntry
	for code, lines := range currCustomers {
		if _, ok := prevCustomers[code]; ok {
			continue
		}
		gains = append(gains, buildEntry(code, lines, current.Key, domain.ChangeGain))
	}
	for code, lines := range prevCustomers {
		if _, ok := currCustomers[code]; ok {
			continue
		}
		losses = append(losses, buildEntry(code, lines, current.Key, domain.ChangeLoss))
	}

	byCode := func(entries []domain.GainLossEntry) {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].CustomerCode < entries[j].CustomerCode
		})
	}
	byCode(gains)
	byCode(losses)

	return append(gains, losses...)
}

func customerLines(sales []domain.Sale) map[string][]domain.Sale {
	out := make(map[string][]domain.Sale)
	for _, s := range sales {
		if s.CustomerCode == "" {
			continue
		}
		out[s.CustomerCode] = append(out[s.CustomerCode], s)
	}
	return out
}

func buildEntry(code string, lines []domain.Sale, period string, kind domain.ChangeType) domain.GainLossEntry {
	sign := 1.0
	if kind == domain.ChangeLoss {
		sign = -1.0
	}

	e := domain.GainLossEntry{
		CustomerCode: code,
		Period:       period,
		ItemChanges:  make(map[string]*domain.ItemChange),
		Type:         kind,
	}
	for _, s := range lines {
		if e.SearchName == "" {
			e.SearchName = s.SearchName
		}
		if e.CompanyName == "" {
			e.CompanyName = s.CompanyName
		}
		for _, it := range s.Items {
			revenue := it.Quantity * it.Price
			e.RevenueChange += sign * revenue

			ic, ok := e.ItemChanges[it.ItemCode]
			if !ok {
				ic = &domain.ItemChange{}
				e.ItemChanges[it.ItemCode] = ic
			}
			ic.QuantityChange += sign * it.Quantity
			ic.RevenueChange += sign * revenue
		}
	}
	return e
}

// GainLossSort selects the presentation order of entries.
type GainLossSort string

const (
	SortByName    GainLossSort = "name"
	SortByRevenue GainLossSort = "revenue"
	SortByItems   GainLossSort = "items"
)

// SortEntries orders entries in place for display. Revenue sorts on the
// absolute change. Unknown keys leave the order untouched.
func SortEntries(entries []domain.GainLossEntry, by GainLossSort, descending bool) {
	var less func(a, b domain.GainLossEntry) bool
	switch by {
	case SortByName:
		less = func(a, b domain.GainLossEntry) bool {
			return strings.ToLower(displayName(a)) < strings.ToLower(displayName(b))
		}
	case SortByRevenue:
		less = func(a, b domain.GainLossEntry) bool {
			return abs(a.RevenueChange) < abs(b.RevenueChange)
		}
	case SortByItems:
		less = func(a, b domain.GainLossEntry) bool {
			return len(a.ItemChanges) < len(b.ItemChanges)
		}
	default:
		return
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if descending {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}

func displayName(e domain.GainLossEntry) string {
	if e.SearchName != "" {
		return e.SearchName
	}
	if e.CompanyName != "" {
		return e.CompanyName
	}
	return e.CustomerCode
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
