package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minhngvn/finman/internal/calendar"
)

// parseAmount reads a signed decimal amount, accepting both "12.34" and the
// comma form "12,34".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// parseRate reads a percentage, accepting the same forms as parseAmount plus
// an optional trailing percent sign, e.g. "0,5%".
func parseRate(s string) (decimal.Decimal, error) {
	return parseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// parseDateOrToday reads a YYYY-MM-DD date, defaulting to today when empty.
func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return calendar.Today(), nil
	}
	return calendar.ParseDate(s)
}

func parseBoolValue(s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("parsing boolean %q: %w", s, err)
	}
	return v, nil
}
