package models

// ParseResult is the output of a statement parser.
type ParseResult struct {
	// Source is the name of the parsed file, for logging.
	Source       string
	Transactions []Transaction
	// Skipped counts source rows that were dropped as non-data or malformed.
	Skipped int
	// Duplicates counts rows dropped by in-file deduplication.
	Duplicates int
}
