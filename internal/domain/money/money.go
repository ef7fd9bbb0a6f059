// Package money converts between decimal currency amounts and the integer
// minor units (currency × 100) they are stored as.
package money

import (
	"github.com/shopspring/decimal"
)

const scale = 2

var hundred = decimal.NewFromInt(100)

// FromMinor turns stored minor units into a decimal amount.
func FromMinor(n int64) decimal.Decimal {
	return decimal.New(n, -scale)
}

// ToMinor turns a decimal amount into minor units, rounding half away from
// zero past the second decimal place.
func ToMinor(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// Parse reads a decimal amount such as "60.00" or "60".
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Format renders d with exactly two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(scale)
}
