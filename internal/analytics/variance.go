package analytics

import (
	"time"

	"github.com/andresuchdata/salesdash/internal/domain"
)

// CalculateVariance compares actual against reference. The percentage is 0
// when the reference is not positive.
func CalculateVariance(actual, reference float64) domain.Variance {
	v := domain.Variance{Amount: actual - reference}
	if reference > 0 {
		v.Percent = v.Amount / reference * 100
	}
	return v
}

// PartialMonthFigure prorates a monthly figure linearly by day of month for
// the month still in progress.
func PartialMonthFigure(monthly float64, year int, month time.Month, currentDay int) float64 {
	days := DaysInMonth(year, month)
	if days == 0 {
		return 0
	}
	if currentDay < 0 {
		currentDay = 0
	}
	if currentDay > days {
		currentDay = days
	}
	daily := monthly / float64(days)
	return daily * float64(currentDay)
}
