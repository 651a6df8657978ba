package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleType distinguishes the two recurrence variants.
type ScheduleType string

const (
	// EveryXDays repeats every Param days.
	EveryXDays ScheduleType = "E"
	// MonthlyDay repeats monthly on day-of-month Param (clamped to month length).
	MonthlyDay ScheduleType = "M"
)

// Schedule is a recurring transaction definition. NextDate is advanced
// forward every time the schedule fires and is monotonically non-decreasing
// across processing calls.
type Schedule struct {
	Type         ScheduleType
	Param        int // days interval or day-of-month
	Amount       decimal.Decimal
	Note         string
	AutoAllocate bool
	NextDate     time.Time
	Category     string // display name; empty means fallback or auto-alloc
}

// Valid reports whether the schedule's parameter is in range. Invalid
// schedules never fire and are never mutated.
func (s Schedule) Valid() bool {
	switch s.Type {
	case EveryXDays:
		return s.Param > 0
	case MonthlyDay:
		return s.Param >= 1 && s.Param <= 31
	default:
		return false
	}
}
