package utils

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrencyExponent is the minor-unit exponent used for display
// formatting (2 for cent-based currencies).
const DefaultCurrencyExponent = 2

// FormatMinorUnits renders an integer minor-unit amount as a decimal string
// for reporting output, e.g. 100000 -> "1000.00". Ledger arithmetic never
// touches this representation; it exists only at the display boundary.
func FormatMinorUnits(amount int64, exponent int32) string {
	return decimal.New(amount, -exponent).StringFixed(exponent)
}

// FormatBalance formats a balance with the default currency exponent.
func FormatBalance(amount int64) string {
	return FormatMinorUnits(amount, DefaultCurrencyExponent)
}
