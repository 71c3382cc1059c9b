package analytics

import (
	"time"

	"github.com/andresuchdata/salesdash/internal/domain"
)

// CalculateBaseline returns the reference monthly revenue for a salesperson:
// the mean of monthly sale totals over the previous calendar year, counting
// only months that had at least one sale. When the previous year has no
// sales the current year is used instead. Returns 0 when neither has data.
func CalculateBaseline(sales []domain.Sale, salesPerson string, now time.Time) float64 {
	year := Civil(now).Year()

	if avg, ok := monthlyMean(sales, salesPerson, year-1); ok {
		return avg
	}
	if avg, ok := monthlyMean(sales, salesPerson, year); ok {
		return avg
	}
	return 0
}

func monthlyMean(sales []domain.Sale, salesPerson string, year int) (float64, bool) {
	totals := MonthlyTotals(sales, salesPerson, year)
	if len(totals) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range totals {
		sum += v
	}
	return sum / float64(len(totals)), true
}

// MonthlyTotals sums sale totals per "YYYY-MM" for one calendar year.
// A year of 0 keeps every year.
func MonthlyTotals(sales []domain.Sale, salesPerson string, year int) map[string]float64 {
	totals := make(map[string]float64)
	for _, s := range sales {
		if !MatchesSalesPerson(s, salesPerson) {
			continue
		}
		d, ok := ParseDate(s.Date)
		if !ok {
			continue
		}
		if year != 0 && d.Year() != year {
			continue
		}
		totals[MonthKey(d)] += s.Total
	}
	return totals
}

// RevenueInRange sums sale totals for a salesperson inside r.
func RevenueInRange(sales []domain.Sale, salesPerson string, r domain.DateRange) float64 {
	var total float64
	for _, s := range FilterSales(sales, domain.SalesFilter{SalesPerson: salesPerson, Range: r}) {
		total += s.Total
	}
	return total
}
