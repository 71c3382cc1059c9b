package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/salesdash/internal/domain"
)

// Engine dates are civil dates carried as midnight UTC so that comparisons
// never depend on the host timezone.

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
}

// ParseDate parses a sheet date. ok is false for anything unparseable; such
// dates are treated as outside every range.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Civil(t), true
		}
	}
	return time.Time{}, false
}

// Civil drops the time of day and location, keeping the wall-clock date.
func Civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a civil date as ISO "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey returns "YYYY-MM" with a zero padded month.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// QuarterKey returns "YYYY-Qn".
func QuarterKey(t time.Time) string {
	return fmt.Sprintf("%04d-Q%d", t.Year(), quarterIndex(t)+1)
}

func quarterIndex(t time.Time) int {
	return (int(t.Month()) - 1) / 3
}

// QuarterBounds returns the first and last day of the quarter containing t.
func QuarterBounds(t time.Time) (time.Time, time.Time) {
	firstMonth := time.Month(quarterIndex(t)*3 + 1)
	start := time.Date(t.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return start, end
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekNumber keeps the dashboard's historical week numbering:
// ceil((daysSinceJan1 + weekdayOfJan1 + 1) / 7), weekday counted from Sunday.
// It is not ISO-8601; saved week selections depend on these exact values.
func WeekNumber(t time.Time) int {
	d := Civil(t)
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := d.YearDay() - 1
	n := days + int(jan1.Weekday()) + 1
	return (n + 6) / 7
}

// InRange reports whether d lies inside r, both bounds inclusive at day
// granularity. Zero bounds are open.
func InRange(d time.Time, r domain.DateRange) bool {
	if !r.Start.IsZero() && d.Before(Civil(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(Civil(r.End)) {
		return false
	}
	return true
}

// Preset names a relative date range anchored on "now".
type Preset string

const (
	PresetThisMonth   Preset = "this-month"
	PresetLastMonth   Preset = "last-month"
	PresetLast3Months Preset = "last-3-months"
	PresetLast6Months Preset = "last-6-months"
	PresetAllTime     Preset = "all-time"
)

// PresetRange resolves a preset to an explicit range. all-time resolves to
// the zero range, which filters nothing.
func PresetRange(p Preset, now time.Time) (domain.DateRange, error) {
	today := Civil(now)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch p {
	case PresetThisMonth:
		return domain.DateRange{Start: firstOfMonth, End: today}, nil
	case PresetLastMonth:
		start := firstOfMonth.AddDate(0, -1, 0)
		return domain.DateRange{Start: start, End: firstOfMonth.AddDate(0, 0, -1)}, nil
	case PresetLast3Months:
		return domain.DateRange{Start: today.AddDate(0, -3, 0), End: today}, nil
	case PresetLast6Months:
		return domain.DateRange{Start: today.AddDate(0, -6, 0), End: today}, nil
	case PresetAllTime, "":
		return domain.DateRange{}, nil
	default:
		return domain.DateRange{}, fmt.Errorf("unknown date preset %q", p)
	}
}

// YTDDateRange is the fiscal year to date: April 1 of the current fiscal year
// through today inclusive.
func YTDDateRange(now time.Time) domain.DateRange {
	today := Civil(now)
	year := today.Year()
	if today.Month() < time.April {
		year--
	}
	return domain.DateRange{
		Start: time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC),
		End:   today,
	}
}
