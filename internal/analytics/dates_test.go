package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-05", date(2024, 3, 5), true},
		{"2024-03-05T17:30:00+07:00", date(2024, 3, 5), true},
		{"2024-03-05 08:00:00", date(2024, 3, 5), true},
		{"3/5/2024", date(2024, 3, 5), true},
		{" 12/31/2023 ", date(2023, 12, 31), true},
		{"", time.Time{}, false},
		{"Invalid Date", time.Time{}, false},
		{"2024-02-30", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseDate(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMonthAndQuarterKeys(t *testing.T) {
	assert.Equal(t, "2024-01", MonthKey(date(2024, 1, 31)))
	assert.Equal(t, "2024-12", MonthKey(date(2024, 12, 1)))
	assert.Equal(t, "2024-Q1", QuarterKey(date(2024, 3, 31)))
	assert.Equal(t, "2024-Q2", QuarterKey(date(2024, 4, 1)))
	assert.Equal(t, "2024-Q4", QuarterKey(date(2024, 12, 31)))

	start, end := QuarterBounds(date(2024, 5, 17))
	assert.Equal(t, date(2024, 4, 1), start)
	assert.Equal(t, date(2024, 6, 30), end)

	start, end = QuarterBounds(date(2024, 2, 10))
	assert.Equal(t, date(2024, 1, 1), start)
	assert.Equal(t, date(2024, 3, 31), end)
}

func TestWeekNumber(t *testing.T) {
	// Jan 1 2024 is a Monday (weekday 1).
	assert.Equal(t, 1, WeekNumber(date(2024, 1, 1)))
	assert.Equal(t, 1, WeekNumber(date(2024, 1, 5)))
	assert.Equal(t, 1, WeekNumber(date(2024, 1, 6)))
	assert.Equal(t, 2, WeekNumber(date(2024, 1, 7)))
	// Jan 1 2023 is a Sunday (weekday 0).
	assert.Equal(t, 1, WeekNumber(date(2023, 1, 1)))
	assert.Equal(t, 1, WeekNumber(date(2023, 1, 7)))
	assert.Equal(t, 2, WeekNumber(date(2023, 1, 8)))
	assert.Equal(t, 53, WeekNumber(date(2024, 12, 31)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
}

func TestPresetRange(t *testing.T) {
	now := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	cases := []struct {
		preset     Preset
		start, end time.Time
	}{
		{PresetThisMonth, date(2024, 5, 1), date(2024, 5, 15)},
		{PresetLastMonth, date(2024, 4, 1), date(2024, 4, 30)},
		{PresetLast3Months, date(2024, 2, 15), date(2024, 5, 15)},
		{PresetLast6Months, date(2023, 11, 15), date(2024, 5, 15)},
	}
	for _, tc := range cases {
		t.Run(string(tc.preset), func(t *testing.T) {
			r, err := PresetRange(tc.preset, now)
			require.NoError(t, err)
			assert.Equal(t, tc.start, r.Start)
			assert.Equal(t, tc.end, r.End)
		})
	}

	r, err := PresetRange(PresetAllTime, now)
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	_, err = PresetRange("next-week", now)
	assert.Error(t, err)
}

func TestPresetLastMonthAcrossYearBoundary(t *testing.T) {
	r, err := PresetRange(PresetLastMonth, date(2024, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2023, 12, 1), r.Start)
	assert.Equal(t, date(2023, 12, 31), r.End)
}

func TestYTDDateRange(t *testing.T) {
	r := YTDDateRange(time.Date(2024, 2, 10, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2023, 4, 1), r.Start)
	assert.Equal(t, date(2024, 2, 10), r.End)

	r = YTDDateRange(date(2024, 4, 1))
	assert.Equal(t, date(2024, 4, 1), r.Start)
	assert.Equal(t, date(2024, 4, 1), r.End)

	r = YTDDateRange(date(2024, 12, 31))
	assert.Equal(t, date(2024, 4, 1), r.Start)
}

func TestInRangeInclusive(t *testing.T) {
	r := domainRange(date(2024, 1, 1), time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC))
	assert.True(t, InRange(date(2024, 1, 1), r))
	assert.True(t, InRange(date(2024, 1, 31), r))
	assert.False(t, InRange(date(2023, 12, 31), r))
	assert.False(t, InRange(date(2024, 2, 1), r))
}
