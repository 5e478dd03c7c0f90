// Package pdfparser parses bank statement PDFs laid out as a six-column
// transaction table: date, details, reference, debit, credit and balance.
package pdfparser

import (
	"context"
	"fmt"
	"strings"

	"ledgerlens/ledgerlens/internal/dateutils"
	"ledgerlens/ledgerlens/internal/fileutils"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/parser"
	"ledgerlens/ledgerlens/internal/parsererror"
	"ledgerlens/ledgerlens/internal/textutils"

	"github.com/shopspring/decimal"
)

// Name identifies this parser in logs.
const Name = "sbi-pdf"

// Column positions of the statement table.
const (
	colDate = iota
	colDetails
	colReference
	colDebit
	colCredit
	colBalance
	columnCount
)

// DefaultDateLayout is the layout of the date column, e.g. "15 Apr 2024".
const DefaultDateLayout = dateutils.DateLayoutStatement

// Parser parses statement PDFs through a TableExtractor.
type Parser struct {
	parser.BaseParser
	extractor  TableExtractor
	dateLayout string
}

// NewParser creates a PDF statement parser. A nil extractor selects the
// LibraryExtractor and an empty dateLayout selects DefaultDateLayout.
func NewParser(logger logging.Logger, extractor TableExtractor, dateLayout string) *Parser {
	if extractor == nil {
		extractor = NewLibraryExtractor()
	}
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &Parser{
		BaseParser: parser.NewBaseParser(Name, logger),
		extractor:  extractor,
		dateLayout: dateLayout,
	}
}

// Parse extracts the statement table from the PDF at filePath.
func (p *Parser) Parse(ctx context.Context, filePath string) (models.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ParseResult{}, err
	}
	if !fileutils.FileExists(filePath) {
		return models.ParseResult{}, fmt.Errorf("statement file not found: %s", filePath)
	}

	p.GetLogger().Info("Parsing PDF file", logging.F(logging.FieldFile, filePath))

	rows, err := p.extractor.ExtractRows(filePath)
	if err != nil {
		return models.ParseResult{}, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "PDF",
			Msg:            "could not extract statement table",
			Err:            err,
		}
	}

	if header := malformedHeader(rows); header != nil {
		return models.ParseResult{}, &parsererror.InvalidFormatError{
			FilePath:             filePath,
			ExpectedFormat:       fmt.Sprintf("PDF statement table with %d columns", columnCount),
			ActualContentSnippet: strings.Join(header, " | "),
			Msg:                  fmt.Sprintf("header has %d columns", len(header)),
		}
	}

	result := p.ParseRows(filePath, rows)
	p.LogResult(result)
	return result, nil
}

// ParseRows converts extracted table rows into transactions. Rows that are
// not six cells wide, header rows and rows whose date or amounts do not
// parse are skipped and counted. The result is deduplicated on the
// transaction identity key, keeping the first occurrence.
func (p *Parser) ParseRows(source string, rows [][]string) models.ParseResult {
	result := models.ParseResult{Source: source}
	var txs []models.Transaction

	for i, row := range rows {
		tx, reason := p.parseRow(row)
		if reason != "" {
			result.Skipped++
			p.LogSkippedRow(source, i+1, reason)
			continue
		}
		txs = append(txs, tx)
	}

	result.Transactions, result.Duplicates = models.Dedup(txs)
	return result
}

// malformedHeader returns the first header row that is not six cells wide.
// Every data row under such a header would be skipped.
func malformedHeader(rows [][]string) []string {
	for _, row := range rows {
		if isHeaderRow(row) && len(row) != columnCount {
			return row
		}
	}
	return nil
}

func isHeaderRow(row []string) bool {
	var hasDate, hasBalance bool
	for _, cell := range row {
		lower := strings.ToLower(cell)
		hasDate = hasDate || strings.Contains(lower, "date")
		hasBalance = hasBalance || strings.Contains(lower, "balance")
	}
	return hasDate && hasBalance
}

// parseRow returns the transaction of a data row, or the reason the row is
// not one.
func (p *Parser) parseRow(row []string) (models.Transaction, string) {
	if len(row) != columnCount {
		return models.Transaction{}, fmt.Sprintf("expected %d columns, got %d", columnCount, len(row))
	}

	dateRaw := row[colDate]
	if strings.TrimSpace(dateRaw) == "" || strings.Contains(dateRaw, "Date") {
		return models.Transaction{}, "header row"
	}

	date, err := dateutils.ParseWithLayout(p.dateLayout, dateRaw)
	if err != nil {
		return models.Transaction{}, "unparseable date"
	}

	debit, err := models.ParseAmount(row[colDebit])
	if err != nil {
		return models.Transaction{}, "unparseable debit"
	}
	credit, err := models.ParseAmount(row[colCredit])
	if err != nil {
		return models.Transaction{}, "unparseable credit"
	}

	amount := debit.Neg()
	if credit.GreaterThan(decimal.Zero) {
		amount = credit
	}

	details := row[colDetails]
	tx := models.Transaction{
		Date:        date,
		Description: details,
		Amount:      amount,
		Type:        models.TypeForAmount(amount),
		Balance:     models.ParseBalance(row[colBalance]),
		Sender:      textutils.ExtractSender(details),
		Reference:   textutils.ExtractReference(details, row[colReference]),
	}
	return models.Normalize(tx), ""
}
