// Package parsererror defines the error types returned when a statement file
// cannot be ingested.
package parsererror

import (
	"fmt"

	"ledgerlens/ledgerlens/internal/models"
)

// ParseError represents a file-level failure to interpret a value.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned when no parser is registered for the
// classification of a file. Callers must refuse the file rather than guess.
type UnsupportedFormatError struct {
	FilePath       string
	Classification models.Classification
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported statement '%s': no parser for file type %q and bank %q",
		e.FilePath, e.Classification.FileType, e.Classification.BankName)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
	if e.ActualContentSnippet != "" {
		msg += fmt.Sprintf(". Content snippet: '%s'", e.ActualContentSnippet)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}
