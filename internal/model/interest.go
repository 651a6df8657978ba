package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestRule configures compounding interest for one category.
// RatePercent is a monthly percentage when Monthly is true, otherwise an
// annual percentage applied at one twelfth per month. LastApplied is the date
// of the last month actually processed (inclusive); it anchors the next
// application and never precedes StartDate once interest has been applied.
type InterestRule struct {
	Category    CategoryKey
	RatePercent decimal.Decimal
	Monthly     bool
	StartDate   time.Time
	LastApplied time.Time
}

// MonthlyRate returns the per-month multiplier: rate/100 for monthly rules,
// rate/1200 for annual ones.
func (r InterestRule) MonthlyRate() decimal.Decimal {
	rate := r.RatePercent.Div(decimal.NewFromInt(100))
	if r.Monthly {
		return rate
	}
	return rate.Div(decimal.NewFromInt(12))
}
