package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  string
		hasError  bool
	}{
		{"Empty string", "", "0", false},
		{"Dash", "-", "0", false},
		{"Simple decimal", "123.45", "123.45", false},
		{"Negative decimal", "-123.45", "-123.45", false},
		{"Thousands separator", "1,234.56", "1234.56", false},
		{"Indian grouping", "1,23,456.78", "123456.78", false},
		{"Rupee sign", "₹ 1,500.00", "1500", false},
		{"Rs prefix", "Rs.500", "500", false},
		{"INR code", "INR 42", "42", false},
		{"Negative with rupee sign", "-₹200", "-200", false},
		{"Parentheses", "(200.00)", "-200", false},
		{"Non-breaking space", "1\u00a0000.50", "1000.50", false},
		{"With spaces", "  123.45  ", "123.45", false},
		{"Malformed decimal", "123.45.67", "0", true},
		{"Non-numeric", "abc", "0", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)

			if tc.hasError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			expected := decimal.RequireFromString(tc.expected)
			assert.True(t, expected.Equal(result), "Expected %s but got %s", expected, result)
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"₹1,23,456.78", "123456.78"},
		{"rs 10", "10"},
		{"(5)", "-5"},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StandardizeAmount(tt.input))
		})
	}
}

func TestParseOptional(t *testing.T) {
	b := ParseOptional("10,500.00")
	assert.True(t, b.Valid)
	assert.Equal(t, "10500.00", b.Decimal.StringFixed(2))

	assert.False(t, ParseOptional("").Valid)
	assert.False(t, ParseOptional("n/a").Valid)
}
