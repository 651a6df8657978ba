// Package calendar provides day-granularity date arithmetic for schedule
// expansion and interest accrual. All dates are normalized to midnight UTC so
// arithmetic never drifts across DST boundaries.
package calendar

import (
	"fmt"
	"time"
)

// DateFormat is the on-disk date representation.
const DateFormat = "2006-01-02"

// maxMonthIterations bounds MonthsBetweenInclusive against absurd ranges.
const maxMonthIterations = 10000

// Date returns the canonical representation of a day: midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize strips the time-of-day and location from t.
func Normalize(t time.Time) time.Time {
	return Date(t.Date())
}

// Today returns the current date.
func Today() time.Time {
	return Normalize(time.Now())
}

// DaysInMonth returns the number of days in the given month, accounting for
// Gregorian leap years.
func DaysInMonth(year int, month time.Month) int {
	mdays := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == time.February {
		leap := year%4 == 0 && (year%100 != 0 || year%400 == 0)
		if leap {
			return 29
		}
		return 28
	}
	return mdays[month-1]
}

// AddDays adds n calendar days to t.
func AddDays(t time.Time, n int) time.Time {
	return Date(t.Year(), t.Month(), t.Day()+n)
}

// AddMonths adds n months to t, rolling the year in either direction and
// clamping the day-of-month to the target month's length:
// 2024-01-31 + 1 month = 2024-02-29.
func AddMonths(t time.Time, n int) time.Time {
	year := t.Year()
	month := int(t.Month())
	day := t.Day()

	total := month - 1 + n
	newYear := year + total/12
	newMonth := total%12 + 1
	if newMonth <= 0 {
		newMonth += 12
		newYear--
	}

	last := DaysInMonth(newYear, time.Month(newMonth))
	if day > last {
		day = last
	}
	return Date(newYear, time.Month(newMonth), day)
}

// NextMonthlyOn returns the next occurrence of the given day-of-month strictly
// after from, clamped to month length. The clamped same-month candidate can
// land on from itself (Feb 29 with day=31), in which case the occurrence rolls
// to the following month.
func NextMonthlyOn(from time.Time, day int) time.Time {
	from = Normalize(from)
	if from.Day() < day {
		last := DaysInMonth(from.Year(), from.Month())
		use := day
		if use > last {
			use = last
		}
		candidate := Date(from.Year(), from.Month(), use)
		if candidate.After(from) {
			return candidate
		}
	}
	next := AddMonths(Date(from.Year(), from.Month(), 1), 1)
	last := DaysInMonth(next.Year(), next.Month())
	use := day
	if use > last {
		use = last
	}
	return Date(next.Year(), next.Month(), use)
}

// MonthsBetweenInclusive counts the monthly apply points at or before end,
// starting at start and stepping with AddMonths. It iterates rather than
// subtracting calendar components so the count always matches the dates that
// AddMonths will actually generate. Returns 0 if end is before start.
func MonthsBetweenInclusive(start, end time.Time) int {
	start = Normalize(start)
	end = Normalize(end)
	if end.Before(start) {
		return 0
	}
	count := 0
	point := start
	for !point.After(end) {
		count++
		if count >= maxMonthIterations {
			break
		}
		point = AddMonths(start, count)
	}
	return count
}

// ParseDate parses a strict YYYY-MM-DD date: exactly 10 characters, dashes at
// positions 4 and 7, components within valid calendar ranges. Anything else is
// an error; callers must skip or re-prompt, never guess.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateFormat) || s[4] != '-' || s[7] != '-' {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Normalize(t), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
