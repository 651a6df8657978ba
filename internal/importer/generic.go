package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/minhngvn/finman/internal/calendar"
	"github.com/minhngvn/finman/internal/model"
)

// GenericParser parses date,amount,category,note CSV files with a header
// row. Dates are YYYY-MM-DD; amounts are signed the same way as the ledger.
type GenericParser struct{}

const (
	genericNumFields = 4
	genericColDate   = 0
	genericColAmount = 1
	genericColCat    = 2
	genericColNote   = 3
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV and returns transactions.
func (p *GenericParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		date, err := calendar.ParseDate(rec[genericColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		amount, err := decimal.NewFromString(rec[genericColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[genericColAmount], err)
		}
		txs = append(txs, model.Transaction{
			Date:     date,
			Amount:   amount,
			Category: rec[genericColCat],
			Note:     rec[genericColNote],
		})
	}
	return txs, nil
}
