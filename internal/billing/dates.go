package billing

import (
	"fmt"
	"time"
)

// AddMonths advances a date by whole calendar months, clamping the day of
// month down to the last valid day of the target month (Jan 31 + 1 month is
// Feb 28/29, never Mar 2). The clock time is preserved. Works in UTC.
func AddMonths(t time.Time, months int) time.Time {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if dim := daysInMonth(first.Year(), first.Month()); day > dim {
		day = dim
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange resolves a "YYYY-MM" key to the half-open UTC interval
// [first day of month, first day of next month).
func MonthRange(monthKey string) (from, to time.Time, err error) {
	var y, m int
	if _, err := fmt.Sscanf(monthKey, "%4d-%2d", &y, &m); err != nil || m < 1 || m > 12 || y < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, use YYYY-MM", monthKey)
	}
	from = time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0)
	return from, to, nil
}

// MonthKey formats a date as its "YYYY-MM" bucket (UTC).
func MonthKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// StartOfWeek returns the Monday 00:00 UTC on or before t.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	diff := int(t.Weekday()) - int(time.Monday)
	if diff < 0 {
		diff += 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -diff)
}
