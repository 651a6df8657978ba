package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y, m, day int) time.Time {
	return Date(y, time.Month(m), day)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 29, DaysInMonth(2024, time.February), "leap year")
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 28, DaysInMonth(1900, time.February), "century non-leap")
	assert.Equal(t, 29, DaysInMonth(2000, time.February), "400-year leap")
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, d(2024, 3, 1), AddDays(d(2024, 2, 29), 1))
	assert.Equal(t, d(2023, 12, 31), AddDays(d(2024, 1, 1), -1))
	assert.Equal(t, d(2024, 1, 15), AddDays(d(2024, 1, 1), 14))
}

func TestAddMonths_Clamping(t *testing.T) {
	assert.Equal(t, d(2024, 2, 29), AddMonths(d(2024, 1, 31), 1))
	assert.Equal(t, d(2023, 2, 28), AddMonths(d(2023, 1, 31), 1))
	assert.Equal(t, d(2024, 4, 30), AddMonths(d(2024, 1, 31), 3))
}

func TestAddMonths_YearRollover(t *testing.T) {
	assert.Equal(t, d(2025, 1, 15), AddMonths(d(2024, 12, 15), 1))
	assert.Equal(t, d(2023, 12, 15), AddMonths(d(2024, 1, 15), -1))
	assert.Equal(t, d(2022, 11, 30), AddMonths(d(2024, 1, 30), -26))
	assert.Equal(t, d(2024, 1, 15), AddMonths(d(2024, 1, 15), 0))
}

func TestNextMonthlyOn(t *testing.T) {
	// Day ahead in the same month.
	assert.Equal(t, d(2024, 1, 20), NextMonthlyOn(d(2024, 1, 15), 20))
	// Day already passed: next month.
	assert.Equal(t, d(2024, 2, 1), NextMonthlyOn(d(2024, 1, 15), 1))
	// Same day: next month, not today.
	assert.Equal(t, d(2024, 2, 15), NextMonthlyOn(d(2024, 1, 15), 15))
	// Clamped to short month.
	assert.Equal(t, d(2024, 2, 29), NextMonthlyOn(d(2024, 1, 31), 31))
	// Clamped same-month candidate would equal from; must roll over.
	assert.Equal(t, d(2024, 3, 31), NextMonthlyOn(d(2024, 2, 29), 31))
}

func TestNextMonthlyOn_NeverReturnsPast(t *testing.T) {
	from := d(2024, 1, 1)
	for i := 0; i < 60; i++ {
		next := NextMonthlyOn(from, 31)
		require.True(t, next.After(from), "next %s not after from %s", FormatDate(next), FormatDate(from))
		from = next
	}
}

func TestMonthsBetweenInclusive(t *testing.T) {
	assert.Equal(t, 1, MonthsBetweenInclusive(d(2024, 1, 1), d(2024, 1, 1)))
	assert.Equal(t, 2, MonthsBetweenInclusive(d(2024, 2, 1), d(2024, 3, 1)))
	assert.Equal(t, 0, MonthsBetweenInclusive(d(2024, 3, 1), d(2024, 2, 1)))
	assert.Equal(t, 3, MonthsBetweenInclusive(d(2024, 1, 15), d(2024, 3, 20)))
	// Start on the 31st: apply points clamp (01-31, 02-29, 03-31) and the
	// count must match those generated dates exactly.
	assert.Equal(t, 3, MonthsBetweenInclusive(d(2024, 1, 31), d(2024, 3, 31)))
	assert.Equal(t, 2, MonthsBetweenInclusive(d(2024, 1, 31), d(2024, 3, 30)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, d(2024, 2, 29), got)

	for _, bad := range []string{
		"", "2024-2-29", "2024/02/29", "24-02-290", "2023-02-29", "2024-13-01", "2024-00-10", "not-a-date",
	} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	day := d(2021, 7, 4)
	got, err := ParseDate(FormatDate(day))
	require.NoError(t, err)
	assert.Equal(t, day, got)
}
