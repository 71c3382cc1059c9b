package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/andresuchdata/salesdash/internal/domain"
)

var ErrInvalidDimension = errors.New("invalid grouping dimension")

// AllSalesPersons is the filter value meaning "no salesperson filter".
const AllSalesPersons = "all"

// Options parameterizes Aggregate.
type Options struct {
	Dimension domain.Dimension
	// Strategy defaults to domain.DefaultStrategy(Dimension) when empty.
	Strategy domain.RevenueStrategy
	Filter   domain.SalesFilter
}

// ParseDimension accepts the dimension names used by the API.
func ParseDimension(s string) (domain.Dimension, error) {
	switch domain.Dimension(strings.TrimSpace(s)) {
	case domain.DimensionItem, "":
		return domain.DimensionItem, nil
	case domain.DimensionChannel:
		return domain.DimensionChannel, nil
	case domain.DimensionCategory:
		return domain.DimensionCategory, nil
	case domain.DimensionVendor:
		return domain.DimensionVendor, nil
	case domain.DimensionCustomerCode:
		return domain.DimensionCustomerCode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDimension, s)
}

// ParseStrategy accepts "item", "sale" or empty (dimension default).
func ParseStrategy(s string) (domain.RevenueStrategy, error) {
	switch domain.RevenueStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case domain.RevenueItemLevel:
		return domain.RevenueItemLevel, nil
	case domain.RevenueSaleLevel:
		return domain.RevenueSaleLevel, nil
	}
	return "", fmt.Errorf("unknown revenue strategy %q", s)
}

// MatchesSalesPerson applies the salesperson equality filter.
func MatchesSalesPerson(s domain.Sale, salesPerson string) bool {
	salesPerson = strings.TrimSpace(salesPerson)
	if salesPerson == "" || strings.EqualFold(salesPerson, AllSalesPersons) {
		return true
	}
	return s.SalesPersonCode == salesPerson
}

// FilterSales keeps sales matching the salesperson and whose date parses and
// falls inside the range.
func FilterSales(sales []domain.Sale, f domain.SalesFilter) []domain.Sale {
	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if !MatchesSalesPerson(s, f.SalesPerson) {
			continue
		}
		d, ok := ParseDate(s.Date)
		if !ok || !InRange(d, f.Range) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Aggregate groups sales by the chosen dimension and, within each group, by
// "YYYY-MM" month.
//
// Item level revenue is quantity * price of the sale's items. Sale level
// revenue is the sale's Total as read from the sheet while quantity is the sum
// of the sale's item quantities. The two are not reconciled: channel and
// category reports have always been built on the sheet amount.
//
// Sales whose date does not parse are skipped. The result only depends on the
// input, never on map iteration order.
func Aggregate(sales []domain.Sale, opts Options) (map[string]*domain.GroupAggregate, error) {
	dim, err := ParseDimension(string(opts.Dimension))
	if err != nil {
		return nil, err
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = domain.DefaultStrategy(dim)
	}

	groups := make(map[string]*domain.GroupAggregate)

	for _, s := range FilterSales(sales, opts.Filter) {
		key, label := groupKey(s, dim)
		if key == "" {
			continue
		}

		d, _ := ParseDate(s.Date)
		month := MonthKey(d)

		quantity, revenue := contribution(s, strategy)

		g, ok := groups[key]
		if !ok {
			g = &domain.GroupAggregate{
				Code:        key,
				Description: label,
				Months:      make(map[string]*domain.MonthBucket),
			}
			groups[key] = g
		} else if g.Description == "" {
			g.Description = label
		}

		bucket, ok := g.Months[month]
		if !ok {
			bucket = &domain.MonthBucket{}
			g.Months[month] = bucket
		}
		bucket.Quantity += quantity
		bucket.Revenue += revenue

		g.Customers = append(g.Customers, domain.CustomerTouch{
			CustomerCode:    s.CustomerCode,
			CustomerName:    customerName(s),
			Date:            FormatDate(d),
			Quantity:        quantity,
			Revenue:         revenue,
			Price:           firstPrice(s),
			SalesPersonCode: s.SalesPersonCode,
		})
	}

	return groups, nil
}

func groupKey(s domain.Sale, dim domain.Dimension) (key, label string) {
	switch dim {
	case domain.DimensionItem:
		if len(s.Items) == 0 {
			return "", ""
		}
		return strings.TrimSpace(s.Items[0].ItemCode), s.Items[0].Description
	case domain.DimensionChannel:
		k := strings.TrimSpace(s.CustType)
		return k, k
	case domain.DimensionCategory:
		k := strings.TrimSpace(s.PostingGroup)
		return k, k
	case domain.DimensionVendor:
		k := strings.TrimSpace(s.VendorNo)
		return k, k
	case domain.DimensionCustomerCode:
		return strings.TrimSpace(s.CustomerCode), customerName(s)
	}
	return "", ""
}

func contribution(s domain.Sale, strategy domain.RevenueStrategy) (quantity, revenue float64) {
	for _, it := range s.Items {
		quantity += it.Quantity
		if strategy == domain.RevenueItemLevel {
			revenue += it.Quantity * it.Price
		}
	}
	if strategy == domain.RevenueSaleLevel {
		revenue = s.Total
	}
	return quantity, revenue
}

func customerName(s domain.Sale) string {
	if s.CompanyName != "" {
		return s.CompanyName
	}
	return s.SearchName
}

func firstPrice(s domain.Sale) float64 {
	if len(s.Items) == 0 {
		return 0
	}
	return s.Items[0].Price
}

// SortedMonths returns a group's months in ascending key order.
func SortedMonths(g *domain.GroupAggregate) []domain.MonthPoint {
	keys := make([]string, 0, len(g.Months))
	for k := range g.Months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]domain.MonthPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, domain.MonthPoint{
			Month:    k,
			Quantity: g.Months[k].Quantity,
			Revenue:  g.Months[k].Revenue,
		})
	}
	return points
}

// Rows converts groups into display rows sorted by revenue descending, code
// ascending on ties.
func Rows(groups map[string]*domain.GroupAggregate) []domain.PerformanceRow {
	rows := make([]domain.PerformanceRow, 0, len(groups))
	for _, g := range groups {
		qty := g.TotalQuantity()
		rev := g.TotalRevenue()
		rows = append(rows, domain.PerformanceRow{
			Code:          g.Code,
			Description:   g.Description,
			TotalQuantity: qty,
			TotalRevenue:  rev,
			AveragePrice:  SafeDiv(rev, qty),
			Months:        SortedMonths(g),
			Customers:     SummarizeCustomers(g.Customers),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		return rows[i].Code < rows[j].Code
	})
	return rows
}

// SafeDiv returns num/den, or 0 when den is zero.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
