// Package parser provides the base parser functionality, the parser interface
// and the registry that dispatches a file classification to a parser.
package parser

import (
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
)

// BaseParser provides common functionality for all parser implementations.
//
// Parsers should embed BaseParser to inherit common functionality:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	name   string
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(name string, logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseParser{
		name:   name,
		logger: logger.WithField(logging.FieldParser, name),
	}
}

// Name returns the parser name.
func (b *BaseParser) Name() string {
	return b.name
}

// SetLogger replaces the logger.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger.WithField(logging.FieldParser, b.name)
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// LogSkippedRow records a dropped source row at debug level.
func (b *BaseParser) LogSkippedRow(filePath string, row int, reason string) {
	b.logger.Debug("Skipping row",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldRow, row),
		logging.F(logging.FieldReason, reason))
}

// LogResult reports the outcome of a parse, warning when rows were dropped.
func (b *BaseParser) LogResult(result models.ParseResult) {
	fields := []logging.Field{
		logging.F(logging.FieldFile, result.Source),
		logging.F(logging.FieldCount, len(result.Transactions)),
		logging.F(logging.FieldSkipped, result.Skipped),
		logging.F(logging.FieldDuplicates, result.Duplicates),
	}
	if result.Skipped > 0 {
		b.logger.Warn("Some rows were skipped while parsing", fields...)
		return
	}
	b.logger.Info("Parsed statement", fields...)
}
