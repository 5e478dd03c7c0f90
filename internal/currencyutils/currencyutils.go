// Package currencyutils parses the rupee amounts found in bank statements.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyPrefix = regexp.MustCompile(`(?i)^(₹|rs\.?|inr)\s*`)

// StandardizeAmount turns a statement amount such as "₹ 1,23,456.78",
// "Rs. 500" or "(200.00)" into a string decimal.NewFromString accepts.
// Commas are always thousands separators, whatever their grouping.
// Parentheses mark a negative amount. An empty or dash-only value becomes "".
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(strings.ReplaceAll(amountStr, "\u00a0", " "))

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") && len(s) > 1 {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}

	s = currencyPrefix.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return ""
	}
	if negative {
		return "-" + s
	}
	return s
}

// ParseAmount parses a statement amount. Empty values are zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// ParseOptional parses an amount that may be absent. Empty and unparseable
// values yield an invalid NullDecimal.
func ParseOptional(amountStr string) decimal.NullDecimal {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.NullDecimal{}
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(amount)
}
