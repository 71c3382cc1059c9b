package analytics

import (
	"sort"

	"github.com/andresuchdata/salesdash/internal/domain"
)

// SummarizeCustomers rolls a group's touches up to one line per customer:
// quantities and revenue are summed, and the most recent purchase supplies the
// last date and price. Touches on the same date keep the later one in input
// order. Lines are ordered by revenue descending.
func SummarizeCustomers(touches []domain.CustomerTouch) []domain.CustomerSummary {
	index := make(map[string]int)
	var out []domain.CustomerSummary

	for _, t := range touches {
		key := t.CustomerCode
		if key == "" {
			key = t.CustomerName
		}

		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, domain.CustomerSummary{
				CustomerCode:     t.CustomerCode,
				CustomerName:     t.CustomerName,
				LastPurchaseDate: t.Date,
				LastPrice:        t.Price,
			})
			i = len(out) - 1
		}

		c := &out[i]
		c.Quantity += t.Quantity
		c.Revenue += t.Revenue
		c.Purchases++
		// ISO dates compare correctly as strings.
		if t.Date >= c.LastPurchaseDate {
			c.LastPurchaseDate = t.Date
			c.LastPrice = t.Price
		}
	}

	for i := range out {
		out[i].AveragePrice = SafeDiv(out[i].Revenue, out[i].Quantity)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out
}
