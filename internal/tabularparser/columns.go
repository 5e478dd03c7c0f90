package tabularparser

import "strings"

// field is one of the canonical transaction fields a source column can map to.
type field int

// Debit and Credit come before Amount so that split columns such as
// "Withdrawal Amt." are not claimed by the "amt" keyword.
const (
	fieldDate field = iota
	fieldDescription
	fieldDebit
	fieldCredit
	fieldAmount
	fieldType
	fieldBalance
	fieldSender
	fieldReference
	fieldCount
)

var fieldNames = [fieldCount]string{
	"Date", "Description", "Debit", "Credit", "Amount", "Type", "Balance", "Sender", "Reference",
}

// fieldKeywords are matched as substrings of the lowercased header names.
var fieldKeywords = [fieldCount][]string{
	fieldDate:        {"date"},
	fieldDescription: {"description", "desc", "narration", "particulars", "details"},
	fieldDebit:       {"withdrawal", "debit"},
	fieldCredit:      {"deposit", "credit"},
	fieldAmount:      {"amount", "amt"},
	fieldType:        {"type"},
	fieldBalance:     {"balance", "bal"},
	fieldSender:      {"sender", "payee", "counterparty"},
	fieldReference:   {"reference", "ref"},
}

// fieldExcludes rule out columns that name both sides, e.g. "Debit/Credit",
// which hold a type rather than an amount.
var fieldExcludes = [fieldCount][]string{
	fieldDebit:  {"deposit", "credit"},
	fieldCredit: {"withdrawal", "debit"},
}

// columnMap holds the source column index of every canonical field, or -1
// when the source has no such column.
type columnMap [fieldCount]int

// mapColumns resolves the canonical fields in declaration order. Each field
// takes the leftmost column not claimed by an earlier field whose name
// contains one of its keywords.
func mapColumns(header []string) columnMap {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var cm columnMap
	claimed := make([]bool, len(names))
	for f := field(0); f < fieldCount; f++ {
		cm[f] = -1
		for i, name := range names {
			if claimed[i] || !containsAny(name, fieldKeywords[f]) || containsAny(name, fieldExcludes[f]) {
				continue
			}
			cm[f] = i
			claimed[i] = true
			break
		}
	}
	return cm
}

// split reports whether amounts come from separate debit and credit
// columns. An explicit Amount column takes precedence.
func (cm columnMap) split() bool {
	return cm[fieldAmount] < 0 && (cm[fieldDebit] >= 0 || cm[fieldCredit] >= 0)
}

// cell returns the trimmed value of field f in row, or "" when the field is
// not mapped or the row is short.
func (cm columnMap) cell(row []string, f field) string {
	idx := cm[f]
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// mapped lists the canonical fields found in the source, keyed by field
// name, with the source column index.
func (cm columnMap) mapped() map[string]int {
	out := make(map[string]int)
	for f := field(0); f < fieldCount; f++ {
		if cm[f] >= 0 {
			out[fieldNames[f]] = cm[f]
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
