package ledger

import (
	"strings"

	"ledgerlens/ledgerlens/internal/models"
)

// Filter selects transactions of a table. Zero fields match everything.
type Filter struct {
	// Sender matches the sender exactly, ignoring case.
	Sender string
	Type   models.TransactionType
	// Keyword matches a substring of the description, ignoring case.
	Keyword string
}

// Match reports whether tx passes the filter.
func (f Filter) Match(tx models.Transaction) bool {
	if f.Sender != "" && !strings.EqualFold(tx.Sender, strings.TrimSpace(f.Sender)) {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Keyword != "" && !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(f.Keyword)) {
		return false
	}
	return true
}

// Apply returns the matching transactions in their original order.
func (f Filter) Apply(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}
