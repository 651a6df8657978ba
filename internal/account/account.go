// Package account holds the in-memory ledger: the transaction log, the
// category ledger, allocation percentages, recurring schedules, and interest
// rules. All mutating operations are synchronous and run to completion; the
// transaction log is the source of truth for every balance.
package account

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/minhngvn/finman/internal/calendar"
	"github.com/minhngvn/finman/internal/model"
)

// pctEpsilon is the threshold below which a total allocation percentage is
// treated as zero.
var pctEpsilon = decimal.New(1, -6)

// Account is the ledger aggregate. The three category maps are parallel:
// every key present in one has an entry in the other two.
type Account struct {
	Balance          decimal.Decimal
	Transactions     []model.Transaction
	Schedules        []model.Schedule
	Interest         map[model.CategoryKey]model.InterestRule
	AllocationPct    map[model.CategoryKey]decimal.Decimal
	CategoryBalances map[model.CategoryKey]decimal.Decimal
	DisplayNames     map[model.CategoryKey]string
	Settings         model.Settings

	log *logrus.Logger
}

// New creates an account with the four default categories (weights summing
// to 100) and default settings.
func New(log *logrus.Logger) *Account {
	a := Empty(log)
	defaults := []struct {
		name string
		pct  int64
	}{
		{"Emergency", 20},
		{"Entertainment", 10},
		{"Saving", 20},
		{model.FallbackDisplay, 50},
	}
	for _, d := range defaults {
		key := model.NormalizeCategory(d.name)
		a.DisplayNames[key] = d.name
		a.AllocationPct[key] = decimal.NewFromInt(d.pct)
		a.CategoryBalances[key] = decimal.Zero
	}
	return a
}

// Empty creates an account with no categories, used by the store before
// loading sections.
func Empty(log *logrus.Logger) *Account {
	if log == nil {
		log = logrus.New()
	}
	return &Account{
		Interest:         make(map[model.CategoryKey]model.InterestRule),
		AllocationPct:    make(map[model.CategoryKey]decimal.Decimal),
		CategoryBalances: make(map[model.CategoryKey]decimal.Decimal),
		DisplayNames:     make(map[model.CategoryKey]string),
		Settings:         model.DefaultSettings(),
		log:              log,
	}
}

// EnsureCategory creates zero entries for the category in all three maps if
// it is unseen, and returns its normalized key.
func (a *Account) EnsureCategory(displayRaw string) model.CategoryKey {
	display := model.SanitizeName(displayRaw)
	key := model.NormalizeCategory(display)
	if _, ok := a.DisplayNames[key]; !ok {
		a.DisplayNames[key] = display
	}
	if _, ok := a.CategoryBalances[key]; !ok {
		a.CategoryBalances[key] = decimal.Zero
	}
	if _, ok := a.AllocationPct[key]; !ok {
		a.AllocationPct[key] = decimal.Zero
	}
	return key
}

// Post appends a transaction to the log and updates the category and total
// balances. The category is created on demand; an empty name falls back to
// "Other". Both amount signs are accepted.
func (a *Account) Post(date time.Time, amount decimal.Decimal, categoryRaw, note string) {
	if categoryRaw == "" {
		categoryRaw = model.FallbackDisplay
	}
	key := a.EnsureCategory(categoryRaw)
	a.Transactions = append(a.Transactions, model.Transaction{
		Date:     calendar.Normalize(date),
		Amount:   amount,
		Category: a.DisplayNames[key],
		Note:     note,
	})
	a.CategoryBalances[key] = a.CategoryBalances[key].Add(amount)
	a.Balance = a.Balance.Add(amount)
}

// Allocate splits an amount across categories proportionally to their
// allocation percentages. With no effective percentages the whole amount goes
// to the fallback category. Zero-percent entries still post (a zero-amount
// transaction) so the category set stays stable.
func (a *Account) Allocate(date time.Time, amount decimal.Decimal, note string) {
	totalPct := decimal.Zero
	for _, pct := range a.AllocationPct {
		totalPct = totalPct.Add(pct)
	}
	if totalPct.LessThanOrEqual(pctEpsilon) {
		a.Post(date, amount, model.FallbackDisplay, note+" (auto alloc fallback)")
		return
	}
	for _, key := range sortedKeys(a.AllocationPct) {
		share := amount.Mul(a.AllocationPct[key]).Div(totalPct)
		a.Post(date, share, a.displayName(key), note+" (auto alloc)")
	}
}

// SetAllocations replaces the allocation table. Categories named in the new
// table are created on demand; other categories keep their balances but lose
// their percentage.
func (a *Account) SetAllocations(alloc map[string]decimal.Decimal) {
	a.AllocationPct = make(map[model.CategoryKey]decimal.Decimal, len(alloc))
	for name, pct := range alloc {
		key := a.EnsureCategory(name)
		a.AllocationPct[key] = pct
	}
	// Parallel-map invariant: keys known elsewhere get a zero percent entry.
	for key := range a.CategoryBalances {
		if _, ok := a.AllocationPct[key]; !ok {
			a.AllocationPct[key] = decimal.Zero
		}
	}
}

// AddSchedule appends a recurring definition. Validation happens at
// processing time so an out-of-range definition is kept but never fires.
func (a *Account) AddSchedule(s model.Schedule) {
	s.NextDate = calendar.Normalize(s.NextDate)
	a.Schedules = append(a.Schedules, s)
}

// SetInterestRule configures compounding interest for a category, replacing
// any previous rule. LastApplied starts at the rule's start date.
func (a *Account) SetInterestRule(categoryRaw string, ratePercent decimal.Decimal, monthly bool, start time.Time) {
	key := a.EnsureCategory(categoryRaw)
	start = calendar.Normalize(start)
	a.Interest[key] = model.InterestRule{
		Category:    key,
		RatePercent: ratePercent,
		Monthly:     monthly,
		StartDate:   start,
		LastApplied: start,
	}
}

func (a *Account) displayName(key model.CategoryKey) string {
	if name := a.DisplayNames[key]; name != "" {
		return name
	}
	return string(key)
}

func sortedKeys[V any](m map[model.CategoryKey]V) []model.CategoryKey {
	keys := make([]model.CategoryKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CategoryInfo is a read-only view of one category for display.
type CategoryInfo struct {
	Key     model.CategoryKey
	Display string
	Balance decimal.Decimal
	Percent decimal.Decimal
}

// Categories returns all categories sorted by key.
func (a *Account) Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(a.CategoryBalances))
	for _, key := range sortedKeys(a.CategoryBalances) {
		infos = append(infos, CategoryInfo{
			Key:     key,
			Display: a.displayName(key),
			Balance: a.CategoryBalances[key],
			Percent: a.AllocationPct[key],
		})
	}
	return infos
}

// InterestRules returns all interest rules sorted by category key.
func (a *Account) InterestRules() []model.InterestRule {
	rules := make([]model.InterestRule, 0, len(a.Interest))
	for _, key := range sortedKeys(a.Interest) {
		rules = append(rules, a.Interest[key])
	}
	return rules
}

// RecentTransactions returns up to n transactions from the end of the log,
// newest last.
func (a *Account) RecentTransactions(n int) []model.Transaction {
	if n > len(a.Transactions) {
		n = len(a.Transactions)
	}
	return a.Transactions[len(a.Transactions)-n:]
}
