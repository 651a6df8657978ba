package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngvn/finman/internal/model"
)

func TestProcessSchedules_EveryXDays(t *testing.T) {
	a := newTestAccount(t)
	a.AddSchedule(model.Schedule{
		Type:     model.EveryXDays,
		Param:    7,
		Amount:   dec("-25"),
		Note:     "groceries",
		NextDate: date(2024, 1, 1),
		Category: "Food",
	})

	a.ProcessSchedulesUpTo(date(2024, 1, 31))

	// 01, 08, 15, 22, 29.
	require.Len(t, a.Transactions, 5)
	assert.Equal(t, date(2024, 2, 5), a.Schedules[0].NextDate)
	assert.True(t, a.CategoryBalances["food"].Equal(dec("-125")))
	assert.Equal(t, "Scheduled: groceries", a.Transactions[0].Note)
}

func TestProcessSchedules_Idempotent(t *testing.T) {
	a := newTestAccount(t)
	a.AddSchedule(model.Schedule{
		Type:     model.EveryXDays,
		Param:    10,
		Amount:   dec("5"),
		NextDate: date(2024, 1, 1),
	})

	a.ProcessSchedulesUpTo(date(2024, 2, 1))
	count := len(a.Transactions)
	a.ProcessSchedulesUpTo(date(2024, 2, 1))

	assert.Len(t, a.Transactions, count, "second call with the same date posts nothing")
}

func TestProcessSchedules_MonthEndClamping(t *testing.T) {
	a := newTestAccount(t)
	a.AddSchedule(model.Schedule{
		Type:     model.MonthlyDay,
		Param:    31,
		Amount:   dec("10"),
		NextDate: date(2024, 1, 31),
		Category: "Bills",
	})

	a.ProcessSchedulesUpTo(date(2024, 4, 30))

	require.Len(t, a.Transactions, 4)
	assert.Equal(t, date(2024, 1, 31), a.Transactions[0].Date)
	assert.Equal(t, date(2024, 2, 29), a.Transactions[1].Date)
	assert.Equal(t, date(2024, 3, 31), a.Transactions[2].Date)
	assert.Equal(t, date(2024, 4, 30), a.Transactions[3].Date)
	assert.Equal(t, date(2024, 5, 31), a.Schedules[0].NextDate)
}

func TestProcessSchedules_InvalidSkippedWithoutMutation(t *testing.T) {
	a := newTestAccount(t)
	start := date(2024, 1, 1)
	a.AddSchedule(model.Schedule{Type: model.EveryXDays, Param: 0, Amount: dec("5"), NextDate: start})
	a.AddSchedule(model.Schedule{Type: model.MonthlyDay, Param: 32, Amount: dec("5"), NextDate: start})

	a.ProcessSchedulesUpTo(date(2024, 6, 1))

	assert.Empty(t, a.Transactions)
	assert.Equal(t, start, a.Schedules[0].NextDate, "invalid schedule never advances")
	assert.Equal(t, start, a.Schedules[1].NextDate)
}

func TestProcessSchedules_AutoAllocatePositive(t *testing.T) {
	a := newTestAccount(t)
	a.AddSchedule(model.Schedule{
		Type:         model.MonthlyDay,
		Param:        1,
		Amount:       dec("100"),
		Note:         "salary",
		AutoAllocate: true,
		NextDate:     date(2024, 1, 1),
	})

	a.ProcessSchedulesUpTo(date(2024, 1, 15))

	require.Len(t, a.Transactions, 4, "one split per default category")
	assert.True(t, a.Balance.Sub(dec("100")).Abs().LessThan(dec("0.000001")))
}

func TestProcessSchedules_NegativeAutoAllocateDowngraded(t *testing.T) {
	a := newTestAccount(t)
	a.AddSchedule(model.Schedule{
		Type:         model.MonthlyDay,
		Param:        1,
		Amount:       dec("-30"),
		Note:         "rent",
		AutoAllocate: true,
		NextDate:     date(2024, 1, 1),
		Category:     "Housing",
	})

	a.ProcessSchedulesUpTo(date(2024, 1, 15))

	require.Len(t, a.Transactions, 1, "negative amounts post directly, never allocate")
	assert.Equal(t, "Housing", a.Transactions[0].Category)
}

func TestProcessSchedules_NextDateMonotonic(t *testing.T) {
	a := newTestAccount(t)
	a.AddSchedule(model.Schedule{
		Type:     model.MonthlyDay,
		Param:    31,
		Amount:   dec("1"),
		NextDate: date(2024, 1, 31),
	})

	prev := a.Schedules[0].NextDate
	for _, upTo := range []struct{ y, m, d int }{
		{2024, 2, 1}, {2024, 3, 15}, {2024, 3, 15}, {2024, 12, 31},
	} {
		a.ProcessSchedulesUpTo(date(upTo.y, upTo.m, upTo.d))
		next := a.Schedules[0].NextDate
		assert.False(t, next.Before(prev), "NextDate moved backwards: %s -> %s", prev, next)
		prev = next
	}
}

func TestProcessSchedules_IterationCapBoundsWork(t *testing.T) {
	a := newTestAccount(t)
	// Daily schedule 40 years back: far more than the hard ceiling.
	a.AddSchedule(model.Schedule{
		Type:     model.EveryXDays,
		Param:    1,
		Amount:   dec("1"),
		NextDate: date(1984, 1, 1),
	})

	a.ProcessSchedulesUpTo(date(2024, 1, 1))

	assert.Len(t, a.Transactions, hardIterationCap, "cap converts a runaway schedule into bounded work")
	// The advanced date was kept, so the next call resumes.
	count := len(a.Transactions)
	a.ProcessSchedulesUpTo(date(2024, 1, 1))
	assert.Greater(t, len(a.Transactions), count)
}
