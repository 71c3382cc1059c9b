package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/andresuchdata/salesdash/internal/domain"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type workbook struct {
	f      *excelize.File
	header int
	first  bool
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	return &workbook{f: f, header: header, first: true}, nil
}

// sheet creates a sheet (renaming the default one for the first call) and
// writes its header row.
func (w *workbook) sheet(name string, headings []interface{}) error {
	if w.first {
		if err := w.f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		w.first = false
	} else if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	if err := w.f.SetSheetRow(name, "A1", &headings); err != nil {
		return fmt.Errorf("write header of %s: %w", name, err)
	}
	if err := w.f.SetRowStyle(name, 1, 1, w.header); err != nil {
		return fmt.Errorf("style header of %s: %w", name, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(headings))
	if err != nil {
		return err
	}
	return w.f.SetColWidth(name, "A", lastCol, 16)
}

// row writes values on 1-based row n.
func (w *workbook) row(name string, n int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(name, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %s: %w", n, name, err)
	}
	return nil
}

func (w *workbook) bytes() ([]byte, error) {
	defer w.f.Close()
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PerformanceWorkbook renders a grouped report: one row per group with a
// revenue column per month, and a second sheet with the customer breakdown.
func PerformanceWorkbook(report domain.PerformanceReport) ([]byte, error) {
	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}

	months := reportMonths(report.Rows)
	headings := []interface{}{"Code", "Description"}
	for _, m := range months {
		headings = append(headings, m)
	}
	headings = append(headings, "Total Quantity", "Total Revenue", "Average Price")

	const summary = "Performance"
	if err := w.sheet(summary, headings); err != nil {
		return nil, err
	}
	for i, r := range report.Rows {
		byMonth := make(map[string]float64, len(r.Months))
		for _, p := range r.Months {
			byMonth[p.Month] = p.Revenue
		}
		values := []interface{}{r.Code, r.Description}
		for _, m := range months {
			values = append(values, byMonth[m])
		}
		values = append(values, r.TotalQuantity, r.TotalRevenue, r.AveragePrice)
		if err := w.row(summary, i+2, values); err != nil {
			return nil, err
		}
	}
	totals := []interface{}{"Total", ""}
	for range months {
		totals = append(totals, "")
	}
	totals = append(totals, report.TotalQuantity, report.TotalRevenue, "")
	if err := w.row(summary, len(report.Rows)+2, totals); err != nil {
		return nil, err
	}

	const customers = "Customers"
	if err := w.sheet(customers, []interface{}{
		"Group", "Customer Code", "Customer Name", "Quantity", "Revenue",
		"Average Price", "Purchases", "Last Purchase", "Last Price",
	}); err != nil {
		return nil, err
	}
	n := 2
	for _, r := range report.Rows {
		for _, c := range r.Customers {
			if err := w.row(customers, n, []interface{}{
				r.Code, c.CustomerCode, c.CustomerName, c.Quantity, c.Revenue,
				c.AveragePrice, c.Purchases, c.LastPurchaseDate, c.LastPrice,
			}); err != nil {
				return nil, err
			}
			n++
		}
	}

	return w.bytes()
}

func reportMonths(rows []domain.PerformanceRow) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for _, p := range r.Months {
			seen[p.Month] = struct{}{}
		}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// GainLossWorkbook renders every gained and lost customer, one row each.
func GainLossWorkbook(report domain.GainLossReport) ([]byte, error) {
	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}

	const name = "Gains and Losses"
	if err := w.sheet(name, []interface{}{
		"Period", "Type", "Customer Code", "Company", "Search Name", "Revenue Change", "Items",
	}); err != nil {
		return nil, err
	}

	n := 2
	for _, p := range report.Periods {
		for _, e := range p.Entries {
			if err := w.row(name, n, []interface{}{
				e.Period, string(e.Type), e.CustomerCode, e.CompanyName, e.SearchName,
				e.RevenueChange, len(e.ItemChanges),
			}); err != nil {
				return nil, err
			}
			n++
		}
	}

	n++
	s := report.SummaryTotals
	for _, line := range [][]interface{}{
		{"Gains", s.GainCount, s.Gains},
		{"Losses", s.LossCount, s.Losses},
		{"Net", "", s.Net},
	} {
		if err := w.row(name, n, line); err != nil {
			return nil, err
		}
		n++
	}

	return w.bytes()
}

// BudgetWorkbook renders the monthly budget versus actual lines and YTD totals.
func BudgetWorkbook(report domain.BudgetReport) ([]byte, error) {
	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}

	name := "Budget " + report.FiscalYear
	if err := w.sheet(name, []interface{}{
		"Month", "Budget", "Actual", "Last Year", "Vs Budget", "Vs Budget %",
		"Vs Last Year", "Vs Last Year %", "Partial",
	}); err != nil {
		return nil, err
	}

	for i, l := range report.Lines {
		if err := w.row(name, i+2, []interface{}{
			l.MonthKey, l.Budget, l.Actual, l.LastYearActual,
			l.VsBudget.Amount, l.VsBudget.Percent,
			l.VsLastYear.Amount, l.VsLastYear.Percent, l.Partial,
		}); err != nil {
			return nil, err
		}
	}

	if err := w.row(name, len(report.Lines)+3, []interface{}{
		"YTD", report.YTDBudget, report.YTDActual, "",
		report.YTDVsBudget.Amount, report.YTDVsBudget.Percent,
	}); err != nil {
		return nil, err
	}

	return w.bytes()
}
