package models

import (
	"ledgerlens/ledgerlens/internal/currencyutils"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a statement amount such as "1,234.56" or "₹ 500".
// A literal dash or an empty value is a zero amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	return currencyutils.ParseAmount(s)
}

// ParseBalance parses a balance value. Anything that is not a number,
// including an empty value, yields an absent balance.
func ParseBalance(s string) decimal.NullDecimal {
	return currencyutils.ParseOptional(s)
}
