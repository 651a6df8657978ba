package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngvn/finman/internal/model"
)

func TestApplyInterest_CompoundingScenario(t *testing.T) {
	a := newTestAccount(t)
	a.Post(date(2024, 1, 1), dec("100"), "Other", "Initial income")
	a.SetInterestRule("Other", dec("1"), true, date(2024, 1, 1))

	a.ApplyInterestUpTo(date(2024, 3, 1))

	// Two apply points: Feb 1 on 100, Mar 1 on the compounded 101.
	require.Len(t, a.Transactions, 3)
	feb := a.Transactions[1]
	mar := a.Transactions[2]
	assert.Equal(t, date(2024, 2, 1), feb.Date)
	assert.True(t, feb.Amount.Equal(dec("1")), "got %s", feb.Amount)
	assert.Equal(t, date(2024, 3, 1), mar.Date)
	assert.True(t, mar.Amount.Equal(dec("1.01")), "interest compounds, got %s", mar.Amount)
	assert.Equal(t, "Interest (monthly)", feb.Note)

	assert.True(t, a.Balance.Equal(dec("102.01")))
	assert.Equal(t, date(2024, 3, 1), a.Interest["other"].LastApplied)
}

func TestApplyInterest_Idempotent(t *testing.T) {
	a := newTestAccount(t)
	a.Post(date(2024, 1, 1), dec("100"), "Other", "seed")
	a.SetInterestRule("Other", dec("1"), true, date(2024, 1, 1))

	a.ApplyInterestUpTo(date(2024, 3, 1))
	count := len(a.Transactions)
	a.ApplyInterestUpTo(date(2024, 3, 1))

	assert.Len(t, a.Transactions, count, "same target date posts no further interest")
}

func TestApplyInterest_MonotonicAdvancement(t *testing.T) {
	a := newTestAccount(t)
	a.Post(date(2024, 1, 1), dec("100"), "Saving", "seed")
	a.SetInterestRule("Saving", dec("2"), true, date(2024, 1, 1))

	target := date(2024, 7, 10)
	a.ApplyInterestUpTo(target)

	rule := a.Interest["saving"]
	assert.False(t, rule.LastApplied.After(target), "lastApplied never passes the target")
	assert.False(t, rule.LastApplied.Before(rule.StartDate))
	for _, tx := range a.Transactions {
		assert.False(t, tx.Date.After(target), "no interest posted past the target")
	}
}

func TestApplyInterest_AnnualRateDividedByTwelve(t *testing.T) {
	a := newTestAccount(t)
	a.Post(date(2024, 1, 1), dec("1200"), "Saving", "seed")
	a.SetInterestRule("Saving", dec("12"), false, date(2024, 1, 1))

	a.ApplyInterestUpTo(date(2024, 2, 1))

	require.Len(t, a.Transactions, 2)
	tx := a.Transactions[1]
	assert.True(t, tx.Amount.Equal(dec("12")), "12%% annual = 1%% monthly, got %s", tx.Amount)
	assert.Equal(t, "Interest (annual/converted to monthly)", tx.Note)
}

func TestApplyInterest_FutureStartSkipped(t *testing.T) {
	a := newTestAccount(t)
	a.Post(date(2024, 1, 1), dec("100"), "Saving", "seed")
	a.SetInterestRule("Saving", dec("1"), true, date(2025, 1, 1))

	a.ApplyInterestUpTo(date(2024, 6, 1))

	assert.Len(t, a.Transactions, 1)
	assert.Equal(t, date(2025, 1, 1), a.Interest["saving"].LastApplied, "rule untouched")
}

func TestApplyInterest_NonPositiveBalancePostsNothing(t *testing.T) {
	a := newTestAccount(t)
	a.Post(date(2024, 1, 1), dec("-50"), "Debt", "overdrawn")
	a.SetInterestRule("Debt", dec("1"), true, date(2024, 1, 1))

	a.ApplyInterestUpTo(date(2024, 4, 1))

	assert.Len(t, a.Transactions, 1, "no interest on non-positive balances")
	// The months still count as processed.
	assert.Equal(t, date(2024, 4, 1), a.Interest["debt"].LastApplied)
}

func TestApplyInterest_ResumesFromAnchor(t *testing.T) {
	a := newTestAccount(t)
	a.Post(date(2024, 1, 1), dec("100"), "Other", "seed")
	a.SetInterestRule("Other", dec("1"), true, date(2024, 1, 1))

	a.ApplyInterestUpTo(date(2024, 2, 1))
	require.Len(t, a.Transactions, 2)

	a.ApplyInterestUpTo(date(2024, 4, 1))

	// Mar and Apr follow without re-applying Feb.
	require.Len(t, a.Transactions, 4)
	assert.Equal(t, date(2024, 3, 1), a.Transactions[2].Date)
	assert.Equal(t, date(2024, 4, 1), a.Transactions[3].Date)
	assert.Equal(t, date(2024, 4, 1), a.Interest["other"].LastApplied)
}

func TestApplyInterest_IndependentRulesShareWorkingSet(t *testing.T) {
	a := newTestAccount(t)
	a.Post(date(2024, 1, 1), dec("100"), "Saving", "seed")
	a.Post(date(2024, 1, 1), dec("200"), "Other", "seed")
	a.SetInterestRule("Saving", dec("1"), true, date(2024, 1, 1))
	a.SetInterestRule("Other", dec("1"), true, date(2024, 1, 1))

	a.ApplyInterestUpTo(date(2024, 2, 1))

	require.Len(t, a.Transactions, 4)
	var saving, other int
	for _, tx := range a.Transactions[2:] {
		switch model.NormalizeCategory(tx.Category) {
		case "saving":
			saving++
			assert.True(t, tx.Amount.Equal(dec("1")))
		case "other":
			other++
			assert.True(t, tx.Amount.Equal(dec("2")))
		}
	}
	assert.Equal(t, 1, saving)
	assert.Equal(t, 1, other)
}
