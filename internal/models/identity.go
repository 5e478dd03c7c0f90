package models

// IdentityKey decides whether two records describe the same transaction.
// Amounts are compared numerically, so 500.0 and 500.00 yield the same key.
type IdentityKey struct {
	Date        string
	Amount      string
	Sender      string
	Reference   string
	Description string
}

// Key returns the identity key of the transaction.
func (t Transaction) Key() IdentityKey {
	return IdentityKey{
		Date:        t.FormattedDate(),
		Amount:      t.Amount.String(),
		Sender:      t.Sender,
		Reference:   t.Reference,
		Description: t.Description,
	}
}

// Dedup returns the transactions with later duplicates removed, keeping the
// first occurrence of every identity key and the original order. The second
// return value is the number of dropped records.
func Dedup(txs []Transaction) ([]Transaction, int) {
	seen := make(map[IdentityKey]struct{}, len(txs))
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		key := tx.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tx)
	}
	return out, len(txs) - len(out)
}
