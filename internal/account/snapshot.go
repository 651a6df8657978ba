package account

import (
	"github.com/shopspring/decimal"

	"github.com/minhngvn/finman/internal/model"
)

// Snapshot is an immutable copy of the mutable account state. The
// transaction log is recorded by length only: the log is append-only, so
// truncating back to the recorded length is a full undo of later postings.
type Snapshot struct {
	txCount          int
	balance          decimal.Decimal
	categoryBalances map[model.CategoryKey]decimal.Decimal
	allocationPct    map[model.CategoryKey]decimal.Decimal
	displayNames     map[model.CategoryKey]string
	interest         map[model.CategoryKey]model.InterestRule
	schedules        []model.Schedule
}

// TakeSnapshot captures the current state for a later Restore.
func (a *Account) TakeSnapshot() Snapshot {
	s := Snapshot{
		txCount:          len(a.Transactions),
		balance:          a.Balance,
		categoryBalances: make(map[model.CategoryKey]decimal.Decimal, len(a.CategoryBalances)),
		allocationPct:    make(map[model.CategoryKey]decimal.Decimal, len(a.AllocationPct)),
		displayNames:     make(map[model.CategoryKey]string, len(a.DisplayNames)),
		interest:         make(map[model.CategoryKey]model.InterestRule, len(a.Interest)),
		schedules:        make([]model.Schedule, len(a.Schedules)),
	}
	for k, v := range a.CategoryBalances {
		s.categoryBalances[k] = v
	}
	for k, v := range a.AllocationPct {
		s.allocationPct[k] = v
	}
	for k, v := range a.DisplayNames {
		s.displayNames[k] = v
	}
	for k, v := range a.Interest {
		s.interest[k] = v
	}
	copy(s.schedules, a.Schedules)
	return s
}

// Restore rolls the account back to a snapshot: the log is truncated to the
// recorded length and the derived state is replaced wholesale.
func (a *Account) Restore(s Snapshot) {
	if len(a.Transactions) > s.txCount {
		a.Transactions = a.Transactions[:s.txCount]
	}
	a.Balance = s.balance
	a.CategoryBalances = make(map[model.CategoryKey]decimal.Decimal, len(s.categoryBalances))
	a.AllocationPct = make(map[model.CategoryKey]decimal.Decimal, len(s.allocationPct))
	a.DisplayNames = make(map[model.CategoryKey]string, len(s.displayNames))
	a.Interest = make(map[model.CategoryKey]model.InterestRule, len(s.interest))
	for k, v := range s.categoryBalances {
		a.CategoryBalances[k] = v
	}
	for k, v := range s.allocationPct {
		a.AllocationPct[k] = v
	}
	for k, v := range s.displayNames {
		a.DisplayNames[k] = v
	}
	for k, v := range s.interest {
		a.Interest[k] = v
	}
	a.Schedules = make([]model.Schedule, len(s.schedules))
	copy(a.Schedules, s.schedules)
}
