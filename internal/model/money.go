package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const zeroDisplay = "0.00"

// CategorySum adds up every entry of c in the base currency.
func CategorySum(c Category) float64 {
	var sum float64
	for _, e := range c.Expenses {
		sum += e.Amount
	}
	return sum
}

// Convert turns a base-currency sum into the target currency for display.
// A non-positive or non-finite rate renders as "0.00".
func Convert(sumBase, rate float64) string {
	if !(rate > 0) || math.IsInf(rate, 0) || !finite(sumBase) {
		return zeroDisplay
	}
	return decimal.NewFromFloat(sumBase).
		Div(decimal.NewFromFloat(rate)).
		StringFixed(2)
}

// FormatAmount renders a base-currency amount with two decimals.
func FormatAmount(x float64) string {
	if !finite(x) {
		return zeroDisplay
	}
	return decimal.NewFromFloat(x).StringFixed(2)
}

// FormatRate renders an exchange rate as typed, or "" when Convert would
// refuse it (non-positive or non-finite).
func FormatRate(r float64) string {
	if !(r > 0) || math.IsInf(r, 0) {
		return ""
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// ParseAmount reads a user-typed amount. Both "12.5" and "12,5" are accepted.
// Anything unparseable comes back as NaN so callers can reject it with ValidAmount.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ValidAmount reports whether x can be recorded as an expense.
func ValidAmount(x float64) bool {
	return finite(x) && x > 0
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
