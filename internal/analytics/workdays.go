package analytics

import "time"

// CountWorkingDays counts days in [start, end], both inclusive, that are
// neither Saturday, Sunday nor a holiday. A nil calendar counts weekends only.
func CountWorkingDays(start, end time.Time, holidays HolidayCalendar) int {
	from := Civil(start)
	to := Civil(end)

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		if holidays != nil && holidays.IsHoliday(d) {
			continue
		}
		count++
	}
	return count
}

// DailyAverage spreads total over workingDays; 0 when there are none.
func DailyAverage(total float64, workingDays int) float64 {
	if workingDays <= 0 {
		return 0
	}
	return total / float64(workingDays)
}
