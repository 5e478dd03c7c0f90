package parser

import (
	"context"

	"ledgerlens/ledgerlens/internal/models"
)

// Parser turns one statement file into normalized transactions.
//
// Row-level problems are absorbed and counted in ParseResult.Skipped.
// File-level problems are returned as errors, typically
// *parsererror.InvalidFormatError or *parsererror.ParseError.
type Parser interface {
	// Name identifies the parser in logs.
	Name() string

	// Parse reads the file at filePath. Returned transactions are normalized.
	Parse(ctx context.Context, filePath string) (models.ParseResult, error)
}
