package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("GENERIC"), "lookup is case-insensitive")
	assert.Nil(t, r.Get("unknown"))
}

func TestGenericParse(t *testing.T) {
	input := strings.Join([]string{
		"date,amount,category,note",
		"2024-01-03,-4.00,Software,GitHub Pro subscription",
		"2024-01-15,2500,Salary,January payroll",
	}, "\n")

	txs, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "Software", txs[0].Category)
	assert.True(t, txs[0].Amount.IsNegative())
	assert.Equal(t, "January payroll", txs[1].Note)
	assert.Equal(t, 2024, txs[1].Date.Year())
}

func TestGenericParse_BadDate(t *testing.T) {
	input := "date,amount,category,note\n01/03/2024,-4.00,Software,bad date format\n"
	_, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestGenericParse_HeaderOnly(t *testing.T) {
	txs, err := (&GenericParser{}).Parse(strings.NewReader("date,amount,category,note\n"))
	require.NoError(t, err)
	assert.Nil(t, txs)
}
