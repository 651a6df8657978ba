package account

import (
	"time"

	"github.com/minhngvn/finman/internal/calendar"
	"github.com/minhngvn/finman/internal/model"
)

// hardIterationCap is the ceiling on occurrences expanded per schedule per
// call. It bounds worst-case work in place of a cancellation mechanism.
const hardIterationCap = 10000

// iterationMargin pads the expected-occurrence estimate.
const iterationMargin = 8

// ProcessSchedulesUpTo expands every recurring definition into concrete
// transactions dated at or before upTo. Invalid schedules are skipped without
// mutation; a schedule that exhausts its iteration cap stops for this call
// and resumes from its advanced NextDate on the next one.
func (a *Account) ProcessSchedulesUpTo(upTo time.Time) {
	upTo = calendar.Normalize(upTo)
	for i := range a.Schedules {
		s := &a.Schedules[i]
		if !s.Valid() {
			a.log.Warnf("skipping schedule %q: parameter %d out of range for type %s", s.Note, s.Param, s.Type)
			continue
		}

		limit := iterationCap(*s, upTo)
		fired := 0
		for !s.NextDate.After(upTo) {
			if fired >= limit {
				a.log.Warnf("schedule %q hit iteration cap (%d); stopping for this call", s.Note, limit)
				break
			}
			a.fire(*s)

			next := advance(*s)
			if !next.After(s.NextDate) {
				// A non-advancing date would loop forever.
				a.log.Warnf("schedule %q failed to advance past %s; stopping", s.Note, calendar.FormatDate(s.NextDate))
				break
			}
			s.NextDate = next
			fired++
		}
	}
}

// fire posts one occurrence. Auto-allocation only applies to positive
// amounts; everything else posts directly to the schedule's category or the
// fallback.
func (a *Account) fire(s model.Schedule) {
	note := "Scheduled: " + s.Note
	if s.AutoAllocate && s.Amount.IsPositive() {
		a.Allocate(s.NextDate, s.Amount, note)
		return
	}
	a.Post(s.NextDate, s.Amount, s.Category, note)
}

func advance(s model.Schedule) time.Time {
	if s.Type == model.EveryXDays {
		return calendar.AddDays(s.NextDate, s.Param)
	}
	return calendar.NextMonthlyOn(s.NextDate, s.Param)
}

// iterationCap estimates the occurrences between NextDate and upTo, padded
// with a safety margin and clamped to the hard ceiling.
func iterationCap(s model.Schedule, upTo time.Time) int {
	var est int
	switch s.Type {
	case model.EveryXDays:
		span := int(upTo.Sub(s.NextDate).Hours() / 24)
		if span > 0 {
			est = span / s.Param
		}
	case model.MonthlyDay:
		est = calendar.MonthsBetweenInclusive(s.NextDate, upTo)
	}
	est += iterationMargin
	if est > hardIterationCap {
		est = hardIterationCap
	}
	return est
}
