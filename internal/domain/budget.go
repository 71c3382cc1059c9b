// internal/domain/budget.go
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidFiscalYear  = errors.New("invalid fiscal year")
	ErrInvalidFiscalMonth = errors.New("invalid fiscal month")
)

// FiscalMonth is one of the twelve fiscal month names, April through March.
type FiscalMonth string

const (
	April     FiscalMonth = "April"
	May       FiscalMonth = "May"
	June      FiscalMonth = "June"
	July      FiscalMonth = "July"
	August    FiscalMonth = "August"
	September FiscalMonth = "September"
	October   FiscalMonth = "October"
	November  FiscalMonth = "November"
	December  FiscalMonth = "December"
	January   FiscalMonth = "January"
	February  FiscalMonth = "February"
	March     FiscalMonth = "March"
)

// FiscalMonths lists the fiscal months in fiscal order.
var FiscalMonths = []FiscalMonth{
	April, May, June, July, August, September,
	October, November, December, January, February, March,
}

// ParseFiscalMonth accepts a month name in any case.
func ParseFiscalMonth(name string) (FiscalMonth, error) {
	trimmed := strings.TrimSpace(name)
	for _, m := range FiscalMonths {
		if strings.EqualFold(string(m), trimmed) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFiscalMonth, name)
}

// CalendarMonth returns the calendar month for m.
func (m FiscalMonth) CalendarMonth() time.Month {
	for i, fm := range FiscalMonths {
		if fm == m {
			return time.Month((i+3)%12 + 1)
		}
	}
	return 0
}

// Index returns the zero based position of m in the fiscal year, or -1.
func (m FiscalMonth) Index() int {
	for i, fm := range FiscalMonths {
		if fm == m {
			return i
		}
	}
	return -1
}

// FiscalMonthOf maps a calendar month to its fiscal month name.
func FiscalMonthOf(month time.Month) FiscalMonth {
	return FiscalMonths[(int(month)+8)%12]
}

// FiscalYear is labelled "YYYY-YYYY" and runs April 1 to March 31.
type FiscalYear struct {
	StartYear int
}

// ParseFiscalYear validates a "YYYY-YYYY" label whose years are consecutive.
func ParseFiscalYear(label string) (FiscalYear, error) {
	parts := strings.Split(strings.TrimSpace(label), "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return FiscalYear{}, fmt.Errorf("%w: %q", ErrInvalidFiscalYear, label)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return FiscalYear{}, fmt.Errorf("%w: %q", ErrInvalidFiscalYear, label)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil || end != start+1 {
		return FiscalYear{}, fmt.Errorf("%w: %q", ErrInvalidFiscalYear, label)
	}
	return FiscalYear{StartYear: start}, nil
}

// FiscalYearOf returns the fiscal year containing t.
func FiscalYearOf(t time.Time) FiscalYear {
	if t.Month() < time.April {
		return FiscalYear{StartYear: t.Year() - 1}
	}
	return FiscalYear{StartYear: t.Year()}
}

func (fy FiscalYear) String() string {
	return fmt.Sprintf("%d-%d", fy.StartYear, fy.StartYear+1)
}

// Previous returns the fiscal year before fy.
func (fy FiscalYear) Previous() FiscalYear {
	return FiscalYear{StartYear: fy.StartYear - 1}
}

// Start is April 1 of the starting year.
func (fy FiscalYear) Start(loc *time.Location) time.Time {
	return time.Date(fy.StartYear, time.April, 1, 0, 0, 0, 0, loc)
}

// End is March 31 of the following year.
func (fy FiscalYear) End(loc *time.Location) time.Time {
	return time.Date(fy.StartYear+1, time.March, 31, 0, 0, 0, 0, loc)
}

// MonthStart returns the first day of fiscal month m within fy.
func (fy FiscalYear) MonthStart(m FiscalMonth, loc *time.Location) time.Time {
	year := fy.StartYear
	if m.CalendarMonth() < time.April {
		year++
	}
	return time.Date(year, m.CalendarMonth(), 1, 0, 0, 0, 0, loc)
}

// MonthlyFigures holds a monetary figure per fiscal month. Months that were
// never entered are absent rather than zero.
type MonthlyFigures map[FiscalMonth]float64

// Total sums every month present.
func (m MonthlyFigures) Total() float64 {
	var total float64
	for _, fm := range FiscalMonths {
		total += m[fm]
	}
	return total
}

// Merge copies every entry of update into m, leaving other months untouched.
func (m MonthlyFigures) Merge(update MonthlyFigures) MonthlyFigures {
	out := make(MonthlyFigures, len(m)+len(update))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range update {
		out[k] = v
	}
	return out
}

// FiscalFigures is the persisted shape shared by budgets and actuals: one
// record per fiscal year.
type FiscalFigures struct {
	FiscalYear   string         `json:"fiscal_year" db:"fiscal_year"`
	Months       MonthlyFigures `json:"months" db:"-"`
	Total        float64        `json:"total" db:"total"`
	Version      int            `json:"version" db:"version"`
	LastModified time.Time      `json:"last_modified" db:"last_modified"`
}

// BudgetData is the admin entered sales budget for a fiscal year.
type BudgetData = FiscalFigures

// ActualData is the admin entered actual sales for a fiscal year.
type ActualData = FiscalFigures
