package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single financial entry in the ledger log.
// Amount is signed: positive = income, negative = expense.
type Transaction struct {
	Date     time.Time
	Amount   decimal.Decimal
	Category string // display name
	Note     string
}
