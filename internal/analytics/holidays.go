package analytics

import "time"

// HolidayCalendar reports whether a civil date is a public holiday.
type HolidayCalendar interface {
	IsHoliday(d time.Time) bool
}

// HolidaySet is a HolidayCalendar backed by ISO date strings.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from "YYYY-MM-DD" literals.
func NewHolidaySet(dates ...string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

func (h HolidaySet) IsHoliday(d time.Time) bool {
	_, ok := h[FormatDate(d)]
	return ok
}

// ThaiHolidays lists Thailand public holidays, including substitution days,
// for the years the dashboard reports on. Extend it each year.
var ThaiHolidays = NewHolidaySet(
	// 2024
	"2024-01-01", "2024-02-26", "2024-04-08", "2024-04-12", "2024-04-13",
	"2024-04-14", "2024-04-15", "2024-04-16", "2024-05-01", "2024-05-06",
	"2024-05-22", "2024-06-03", "2024-07-22", "2024-07-29", "2024-08-12",
	"2024-10-14", "2024-10-23", "2024-12-05", "2024-12-10", "2024-12-30",
	"2024-12-31",
	// 2025
	"2025-01-01", "2025-02-12", "2025-04-07", "2025-04-14", "2025-04-15",
	"2025-05-01", "2025-05-05", "2025-05-12", "2025-06-02", "2025-06-03",
	"2025-07-10", "2025-07-28", "2025-08-11", "2025-08-12", "2025-10-13",
	"2025-10-23", "2025-12-05", "2025-12-10", "2025-12-31",
	// 2026
	"2026-01-01", "2026-01-02", "2026-03-03", "2026-04-06", "2026-04-13",
	"2026-04-14", "2026-04-15", "2026-05-01", "2026-05-04", "2026-06-01",
	"2026-06-03", "2026-07-28", "2026-07-29", "2026-08-12", "2026-10-13",
	"2026-10-23", "2026-12-07", "2026-12-10", "2026-12-31",
)
