package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minhngvn/finman/internal/calendar"
	"github.com/minhngvn/finman/internal/model"
)

// postingEpsilon is the smallest interest amount worth posting.
var postingEpsilon = decimal.New(1, -9)

// ApplyInterestUpTo applies compounding interest for every rule, month by
// month, up to and including upTo. The simulation runs against a working copy
// of the transaction log so interest earned in one month raises the base
// balance of the following months; each posting also lands in the real log
// as it occurs.
func (a *Account) ApplyInterestUpTo(upTo time.Time) {
	if len(a.Interest) == 0 {
		return
	}
	upTo = calendar.Normalize(upTo)

	working := make([]model.Transaction, len(a.Transactions), len(a.Transactions)+len(a.Interest))
	copy(working, a.Transactions)

	for _, key := range sortedKeys(a.Interest) {
		rule := a.Interest[key]
		if rule.StartDate.After(upTo) {
			continue
		}

		anchor := rule.LastApplied
		if anchor.Before(rule.StartDate) {
			anchor = rule.StartDate
		}
		firstApply := calendar.AddMonths(anchor, 1)
		months := calendar.MonthsBetweenInclusive(firstApply, upTo)
		if months == 0 {
			continue
		}

		monthlyRate := rule.MonthlyRate()
		note := "Interest (monthly)"
		if !rule.Monthly {
			note = "Interest (annual/converted to monthly)"
		}

		for m := 0; m < months; m++ {
			applyDate := calendar.AddMonths(firstApply, m)
			balance := categoryBalanceAt(working, key, applyDate)
			if !balance.IsPositive() {
				// The month still counts as processed.
				continue
			}
			interest := balance.Mul(monthlyRate)
			if interest.Abs().LessThan(postingEpsilon) {
				continue
			}
			a.Post(applyDate, interest, a.displayName(key), note)
			working = append(working, model.Transaction{
				Date:     applyDate,
				Amount:   interest,
				Category: a.displayName(key),
				Note:     note,
			})
		}

		// Inclusive anchor: the last month actually processed.
		rule.LastApplied = calendar.AddMonths(firstApply, months-1)
		a.Interest[key] = rule
	}
}

// categoryBalanceAt sums the working-set amounts for one category dated at or
// before the apply point.
func categoryBalanceAt(txs []model.Transaction, key model.CategoryKey, at time.Time) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txs {
		if model.NormalizeCategory(t.Category) != key {
			continue
		}
		if !t.Date.After(at) {
			balance = balance.Add(t.Amount)
		}
	}
	return balance
}
