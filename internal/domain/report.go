// internal/domain/report.go
package domain

import "time"

// Dimension is the field sales are grouped by.
type Dimension string

const (
	DimensionItem         Dimension = "itemCode"
	DimensionChannel      Dimension = "custType"
	DimensionCategory     Dimension = "postingGroup"
	DimensionVendor       Dimension = "vendorNo"
	DimensionCustomerCode Dimension = "customerCode"
)

// RevenueStrategy selects how a sale contributes quantity and revenue to a group.
type RevenueStrategy string

const (
	// RevenueItemLevel uses quantity * price of the sale's item.
	RevenueItemLevel RevenueStrategy = "item"
	// RevenueSaleLevel uses the sale's Total and the summed quantity of all its items.
	RevenueSaleLevel RevenueStrategy = "sale"
)

// DefaultStrategy returns the revenue strategy each dimension has always been
// reported with. Item and vendor views recompute revenue per item; channel,
// category and customer views take the sale total as is.
func DefaultStrategy(d Dimension) RevenueStrategy {
	switch d {
	case DimensionItem, DimensionVendor:
		return RevenueItemLevel
	default:
		return RevenueSaleLevel
	}
}

// DateRange is an inclusive [Start, End] day range. A zero bound is open.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the range applies no filtering at all.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// SalesFilter narrows the sales fed into a report. An empty or "all"
// salesperson applies no filter.
type SalesFilter struct {
	SalesPerson string    `json:"sales_person,omitempty"`
	Range       DateRange `json:"range"`
}

// MonthBucket accumulates one "YYYY-MM" month of a group.
type MonthBucket struct {
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// CustomerTouch is a single sale contributing to a group, kept for drill-down.
type CustomerTouch struct {
	CustomerCode    string  `json:"customer_code"`
	CustomerName    string  `json:"customer_name"`
	Date            string  `json:"date"`
	Quantity        float64 `json:"quantity"`
	Revenue         float64 `json:"revenue"`
	Price           float64 `json:"price"`
	SalesPersonCode string  `json:"sales_person_code"`
}

// GroupAggregate is the per-key result of grouping sales.
type GroupAggregate struct {
	Code        string                  `json:"code"`
	Description string                  `json:"description"`
	Months      map[string]*MonthBucket `json:"months"`
	Customers   []CustomerTouch         `json:"customers"`
}

// TotalRevenue sums revenue over every month.
func (g *GroupAggregate) TotalRevenue() float64 {
	var total float64
	for _, m := range g.Months {
		total += m.Revenue
	}
	return total
}

// TotalQuantity sums quantity over every month.
func (g *GroupAggregate) TotalQuantity() float64 {
	var total float64
	for _, m := range g.Months {
		total += m.Quantity
	}
	return total
}

// CustomerSummary is the display level roll-up of a group's touches for one customer.
type CustomerSummary struct {
	CustomerCode     string  `json:"customer_code"`
	CustomerName     string  `json:"customer_name"`
	Quantity         float64 `json:"quantity"`
	Revenue          float64 `json:"revenue"`
	AveragePrice     float64 `json:"average_price"`
	LastPurchaseDate string  `json:"last_purchase_date"`
	LastPrice        float64 `json:"last_price"`
	Purchases        int     `json:"purchases"`
}

// MonthPoint is one entry of a sorted month series.
type MonthPoint struct {
	Month    string  `json:"month"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// PerformanceRow is a display ready group: totals, sorted months and customers.
type PerformanceRow struct {
	Code          string            `json:"code"`
	Description   string            `json:"description"`
	TotalQuantity float64           `json:"total_quantity"`
	TotalRevenue  float64           `json:"total_revenue"`
	AveragePrice  float64           `json:"average_price"`
	Months        []MonthPoint      `json:"months"`
	Customers     []CustomerSummary `json:"customers"`
}

// PerformanceReport is the response of a grouped performance view.
type PerformanceReport struct {
	Dimension     Dimension        `json:"dimension"`
	Strategy      RevenueStrategy  `json:"strategy"`
	Filter        SalesFilter      `json:"filter"`
	Rows          []PerformanceRow `json:"rows"`
	TotalQuantity float64          `json:"total_quantity"`
	TotalRevenue  float64          `json:"total_revenue"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// Period is a calendar quarter used for gain/loss comparison.
type Period struct {
	Key       string    `json:"key"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Sales     []Sale    `json:"-"`
}

// ChangeType marks an entry as a gained or lost customer.
type ChangeType string

const (
	ChangeGain ChangeType = "gain"
	ChangeLoss ChangeType = "loss"
)

// ItemChange is the quantity and revenue delta of one item for a customer.
type ItemChange struct {
	QuantityChange float64 `json:"quantity_change"`
	RevenueChange  float64 `json:"revenue_change"`
}

// GainLossEntry describes one customer gained or lost in a period.
type GainLossEntry struct {
	CustomerCode  string                 `json:"customer_code"`
	SearchName    string                 `json:"search_name"`
	CompanyName   string                 `json:"company_name"`
	Period        string                 `json:"period"`
	RevenueChange float64                `json:"revenue_change"`
	ItemChanges   map[string]*ItemChange `json:"item_changes"`
	Type          ChangeType             `json:"type"`
}

// GainLossSummary totals a gain/loss result. Losses are negative.
type GainLossSummary struct {
	Gains     float64 `json:"gains"`
	Losses    float64 `json:"losses"`
	GainCount int     `json:"gain_count"`
	LossCount int     `json:"loss_count"`
	Net       float64 `json:"net"`
}

// GainLossPeriod holds the entries detected for one period.
type GainLossPeriod struct {
	Period  Period          `json:"period"`
	Entries []GainLossEntry `json:"entries"`
}

// GainLossReport is the full detection output in chronological order.
type GainLossReport struct {
	Periods       []GainLossPeriod `json:"periods"`
	SummaryTotals GainLossSummary  `json:"summary_totals"`
	SalesPerson   string           `json:"sales_person,omitempty"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// Variance compares an actual figure against a reference figure.
type Variance struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// BudgetMonthLine is one fiscal month in the budget versus actual report.
type BudgetMonthLine struct {
	Month          FiscalMonth `json:"month"`
	MonthKey       string      `json:"month_key"`
	Budget         float64     `json:"budget"`
	Actual         float64     `json:"actual"`
	LastYearActual float64     `json:"last_year_actual"`
	VsBudget       Variance    `json:"vs_budget"`
	VsLastYear     Variance    `json:"vs_last_year"`
	Partial        bool        `json:"partial"`
	ActualSource   string      `json:"actual_source"`
}

// BudgetReport is the budget versus actual view for a fiscal year.
type BudgetReport struct {
	FiscalYear  string            `json:"fiscal_year"`
	Lines       []BudgetMonthLine `json:"lines"`
	YTDRange    DateRange         `json:"ytd_range"`
	YTDBudget   float64           `json:"ytd_budget"`
	YTDActual   float64           `json:"ytd_actual"`
	YTDVsBudget Variance          `json:"ytd_vs_budget"`
	Baseline    float64           `json:"baseline"`
}

// DailyAverage is revenue spread over the working days of a range.
type DailyAverage struct {
	Range        DateRange `json:"range"`
	Revenue      float64   `json:"revenue"`
	WorkingDays  int       `json:"working_days"`
	DailyAverage float64   `json:"daily_average"`
}
