// Package pipeline runs the ingestion of one statement file end to end:
// classify, parse, merge into the ledger and refresh the monthly analyses.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"ledgerlens/ledgerlens/internal/analysis"
	"ledgerlens/ledgerlens/internal/detector"
	"ledgerlens/ledgerlens/internal/ledger"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/parser"
	"ledgerlens/ledgerlens/internal/validation"

	"github.com/google/uuid"
)

// ErrNoTransactions is returned when a statement parses to zero records.
var ErrNoTransactions = errors.New("statement contains no transactions")

// IngestResult reports what one Ingest did.
type IngestResult struct {
	BatchID        string
	FilePath       string
	Classification models.Classification
	Parser         string
	Parsed         int
	Skipped        int
	Write          ledger.WriteResult
	Summaries      []models.Summary
}

// LedgerWriter merges a batch into the ledger.
type LedgerWriter interface {
	Write(ctx context.Context, batch []models.Transaction) (ledger.WriteResult, error)
}

// Analyzer regenerates the analysis of a month.
type Analyzer interface {
	Analyze(ctx context.Context, month string) (models.Summary, error)
}

// Pipeline wires the ingestion steps together.
type Pipeline struct {
	registry *parser.Registry
	writer   LedgerWriter
	analyzer Analyzer
	logger   logging.Logger
}

// New creates a Pipeline.
func New(registry *parser.Registry, writer LedgerWriter, analyzer Analyzer, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{
		registry: registry,
		writer:   writer,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Ingest processes the statement at filePath. Files without a registered
// parser are refused with *parsererror.UnsupportedFormatError before they
// are read.
func (p *Pipeline) Ingest(ctx context.Context, filePath string) (IngestResult, error) {
	result := IngestResult{
		BatchID:        uuid.NewString(),
		FilePath:       filePath,
		Classification: detector.Detect(filePath),
	}
	logger := p.logger.WithFields(
		logging.F(logging.FieldBatchID, result.BatchID),
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldFileType, result.Classification.FileType),
		logging.F(logging.FieldBank, result.Classification.BankName))

	prs, err := p.registry.Lookup(filePath, result.Classification)
	if err != nil {
		logger.Warn("Refusing unsupported statement")
		return result, err
	}
	result.Parser = prs.Name()
	logger.Info("Ingesting statement", logging.F(logging.FieldParser, prs.Name()))

	if err := validation.CheckStatementFile(filePath, result.Classification.FileType); err != nil {
		return result, err
	}

	parsed, err := prs.Parse(ctx, filePath)
	if err != nil {
		return result, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	result.Parsed = len(parsed.Transactions)
	result.Skipped = parsed.Skipped
	if result.Parsed == 0 {
		logger.Warn("No transactions found", logging.F(logging.FieldSkipped, parsed.Skipped))
		return result, ErrNoTransactions
	}

	result.Write, err = p.writer.Write(ctx, parsed.Transactions)
	if err != nil {
		return result, fmt.Errorf("failed to update ledger: %w", err)
	}

	for _, month := range result.Write.Months {
		summary, err := p.analyzer.Analyze(ctx, month)
		if err != nil {
			return result, fmt.Errorf("failed to analyze %s: %w", month, err)
		}
		result.Summaries = append(result.Summaries, summary)
	}

	logger.Info("Statement ingested",
		logging.F(logging.FieldCount, result.Parsed),
		logging.F(logging.FieldSkipped, result.Skipped),
		logging.F("added", result.Write.Added),
		logging.F(logging.FieldDuplicates, result.Write.Duplicates),
		logging.F("months", result.Write.Months))
	return result, nil
}

var _ Analyzer = (*analysis.Generator)(nil)
var _ LedgerWriter = (*ledger.Writer)(nil)
