// Package report turns raw API records into user-facing summaries: currency
// strings, fixed-width tables, and grouped account overviews.
package report

import (
	"math"

	"github.com/Rhymond/go-money"
)

// FromMilliunits converts an integer milliunit amount (1/1000 of a currency
// unit) to its decimal value.
func FromMilliunits(m int64) float64 {
	return float64(m) / 1000
}

// FormatAmount renders a decimal value as a $-prefixed, comma-grouped string
// with exactly two fractional digits. Negative values place the sign before
// the $ (-$12.34, never $-12.34).
func FormatAmount(v float64) string {
	cents := int64(math.Round(v * 100))
	return money.New(cents, money.USD).Display()
}

// FormatMilliunits renders a milliunit amount directly as currency.
func FormatMilliunits(m int64) string {
	return FormatAmount(FromMilliunits(m))
}
