// Package tabularparser parses delimited and spreadsheet statements whose
// columns carry arbitrary names. Source columns are mapped onto the canonical
// transaction fields by keyword; everything else is dropped.
package tabularparser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"ledgerlens/ledgerlens/internal/dateutils"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/parser"
	"ledgerlens/ledgerlens/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Name identifies this parser in logs.
const Name = "tabular"

const expectedFormat = "table with a header row"

// Parser parses .csv, .xlsx and .xls statements.
type Parser struct {
	parser.BaseParser
	delimiter rune
}

// NewParser creates a tabular parser. delimiter applies to .csv files; zero
// selects a comma.
func NewParser(logger logging.Logger, delimiter rune) *Parser {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Parser{
		BaseParser: parser.NewBaseParser(Name, logger),
		delimiter:  delimiter,
	}
}

// Parse reads the table in filePath, choosing the reader from its extension.
func (p *Parser) Parse(ctx context.Context, filePath string) (models.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ParseResult{}, err
	}

	p.GetLogger().Info("Parsing tabular file", logging.F(logging.FieldFile, filePath))

	table, err := p.readTable(filePath)
	if err != nil {
		return models.ParseResult{}, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: expectedFormat,
			Msg:            "could not read table",
			Err:            err,
		}
	}

	result, err := p.ParseTable(filePath, table)
	if err != nil {
		return models.ParseResult{}, err
	}
	p.LogResult(result)
	return result, nil
}

func (p *Parser) readTable(filePath string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".csv":
		return readCSV(filePath, p.delimiter)
	case ".xlsx":
		return readXLSX(filePath)
	case ".xls":
		return readXLS(filePath)
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
}

// ParseTable converts a table whose first non-blank row is the header.
//
// Dates that do not parse become absent. An Amount that does not parse fails
// the whole file with a *parsererror.ParseError. A Type column saying CR or
// DR decides the sign of the amount; without one the type follows the sign.
// Without an Amount column, separate withdrawal and deposit columns give the
// amount: a deposit is positive, otherwise the withdrawal is negative.
func (p *Parser) ParseTable(source string, table [][]string) (models.ParseResult, error) {
	headerIdx := -1
	for i, row := range table {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return models.ParseResult{}, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: expectedFormat,
			Msg:            "file has no header row",
		}
	}

	cm := mapColumns(table[headerIdx])
	p.GetLogger().Debug("Mapped columns",
		logging.F(logging.FieldFile, source),
		logging.F("columns", cm.mapped()))

	result := models.ParseResult{Source: source}
	var txs []models.Transaction
	for i := headerIdx + 1; i < len(table); i++ {
		row := table[i]
		if isBlank(row) {
			continue
		}
		tx, err := p.parseRow(source, i+1, cm, row)
		if err != nil {
			return models.ParseResult{}, err
		}
		txs = append(txs, tx)
	}

	result.Transactions, result.Duplicates = models.Dedup(txs)
	return result, nil
}

func (p *Parser) parseRow(source string, line int, cm columnMap, row []string) (models.Transaction, error) {
	var tx models.Transaction

	if raw := cm.cell(row, fieldDate); raw != "" {
		date, err := dateutils.ParseDate(raw)
		if err != nil {
			p.GetLogger().Debug("Unparseable date, leaving it absent",
				logging.F(logging.FieldFile, source),
				logging.F(logging.FieldRow, line),
				logging.F("value", raw))
		} else {
			tx.Date = date
		}
	}

	amount, err := rowAmount(line, cm, row)
	if err != nil {
		return models.Transaction{}, err
	}

	if typ, ok := models.ParseTransactionType(cm.cell(row, fieldType)); ok {
		amount = signFor(typ, amount)
	}
	tx.Amount = amount
	tx.Type = models.TypeForAmount(amount)

	tx.Description = cm.cell(row, fieldDescription)
	tx.Balance = models.ParseBalance(cm.cell(row, fieldBalance))
	tx.Sender = cm.cell(row, fieldSender)
	tx.Reference = cm.cell(row, fieldReference)

	return models.Normalize(tx), nil
}

func rowAmount(line int, cm columnMap, row []string) (decimal.Decimal, error) {
	if !cm.split() {
		return parseAmountCell(line, cm, row, fieldAmount)
	}
	debit, err := parseAmountCell(line, cm, row, fieldDebit)
	if err != nil {
		return decimal.Zero, err
	}
	credit, err := parseAmountCell(line, cm, row, fieldCredit)
	if err != nil {
		return decimal.Zero, err
	}
	if credit.IsPositive() {
		return credit, nil
	}
	return debit.Abs().Neg(), nil
}

func parseAmountCell(line int, cm columnMap, row []string, f field) (decimal.Decimal, error) {
	raw := cm.cell(row, f)
	amount, err := models.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{
			Parser: Name,
			Field:  fmt.Sprintf("%s (row %d)", fieldNames[f], line),
			Value:  raw,
			Err:    err,
		}
	}
	return amount, nil
}

// signFor makes the amount sign agree with an explicit transaction type.
func signFor(typ models.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if typ == models.TypeDebit {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
