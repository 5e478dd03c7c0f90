// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the sign label of a transaction.
type TransactionType string

const (
	TypeCredit TransactionType = "CR"
	TypeDebit  TransactionType = "DR"
)

// DateLayout is the layout used for dates in ledger tables.
const DateLayout = "2006-01-02"

// MonthLayout is the layout of a month label such as 2024_04.
const MonthLayout = "2006_01"

// Transaction is a single normalized statement line.
//
// Absent values are represented by the zero value of the field: a zero Date,
// an invalid Balance, an empty Sender or Reference.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Balance     decimal.NullDecimal
	Sender      string
	Reference   string
}

// TypeForAmount returns CR for strictly positive amounts and DR otherwise.
// Zero amounts are debits.
func TypeForAmount(amount decimal.Decimal) TransactionType {
	if amount.IsPositive() {
		return TypeCredit
	}
	return TypeDebit
}

// ParseTransactionType maps the labels found in statement files to a TransactionType.
// It returns false when the label is not recognized.
func ParseTransactionType(label string) (TransactionType, bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "CR", "CREDIT", "CRDT":
		return TypeCredit, true
	case "DR", "DEBIT", "DBIT":
		return TypeDebit, true
	default:
		return "", false
	}
}

// HasDate reports whether the transaction carries a date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// Month returns the YYYY_MM label of the transaction date, or "" when the date is absent.
func (t Transaction) Month() string {
	if !t.HasDate() {
		return ""
	}
	return MonthLabel(t.Date)
}

// FormattedDate returns the date in DateLayout, or "" when absent.
func (t Transaction) FormattedDate() string {
	if !t.HasDate() {
		return ""
	}
	return t.Date.Format(DateLayout)
}

// String returns a short human readable form of the transaction.
func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s", t.FormattedDate(), t.Type, t.Amount.StringFixed(2), t.Description)
}

// Normalize applies the text normalization every record goes through right
// after parsing: Description is lowercased and trimmed, Sender is uppercased
// and trimmed, and a missing Type is derived from the Amount sign.
func Normalize(t Transaction) Transaction {
	t.Description = strings.ToLower(strings.TrimSpace(t.Description))
	t.Sender = strings.ToUpper(strings.TrimSpace(t.Sender))
	t.Reference = strings.TrimSpace(t.Reference)
	if t.Type == "" {
		t.Type = TypeForAmount(t.Amount)
	}
	return t
}

// NormalizeAll normalizes a slice of transactions in place and returns it.
func NormalizeAll(txs []Transaction) []Transaction {
	for i := range txs {
		txs[i] = Normalize(txs[i])
	}
	return txs
}

// MonthLabel formats a date as a YYYY_MM month label.
func MonthLabel(date time.Time) string {
	return date.Format(MonthLayout)
}

// ParseMonthLabel parses a YYYY_MM month label.
func ParseMonthLabel(label string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(label))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY_MM: %w", label, err)
	}
	return t, nil
}
