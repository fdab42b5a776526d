package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a string to a decimal amount. Absent or malformed
// numeric fields are treated as zero throughout the transformation.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// ParseCount converts a string to an integer count, tolerating decimal
// notation ("2.0") in the source field.
func ParseCount(s string) int {
	return int(ParseAmount(s).IntPart())
}

// FormatAmount renders a monetary value with the two fixed decimals the
// AP voucher formats carry.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
