package utils

import (
	"github.com/shopspring/decimal"
)

// DisplayPrecision is the number of decimal places used when amounts are shown or exported.
const DisplayPrecision = 2

// NullAmountPlaceholder is shown in place of an amount that could not be converted.
const NullAmountPlaceholder = "-"

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatAmount formats an amount for display.
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, DisplayPrecision)
}

// FormatNullableAmount formats an amount for display, or returns the placeholder when it is null.
// A null amount is never shown as zero.
func FormatNullableAmount(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return NullAmountPlaceholder
	}
	return FormatAmount(amount.Decimal)
}
