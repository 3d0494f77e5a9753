package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision.
// Example: 7500.4 with precision 0 returns "7500"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

// FormatSigned formats an amount with an explicit sign, as shown on ledger statements.
// Example: 3000 returns "+3000", -1500.5 with precision 1 returns "-1500.5"
func FormatSigned(amount decimal.Decimal, precision int) string {
	s := FormatWithPrecision(amount, precision)
	if amount.Round(int32(precision)).IsPositive() {
		return "+" + s
	}
	return s
}
