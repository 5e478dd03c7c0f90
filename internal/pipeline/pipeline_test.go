package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ledgerlens/ledgerlens/internal/analysis"
	"ledgerlens/ledgerlens/internal/ledger"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/parser"
	"ledgerlens/ledgerlens/internal/parsererror"
	"ledgerlens/ledgerlens/internal/pdfparser"
	"ledgerlens/ledgerlens/internal/store"
	"ledgerlens/ledgerlens/internal/tabularparser"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	pipeline *Pipeline
	writer   *ledger.Writer
	logger   *logging.MockLogger
	inputDir string
	outDir   string
}

func newFixture(t *testing.T, pdfRows [][]string) fixture {
	t.Helper()
	root := t.TempDir()
	logger := logging.NewMockLogger()
	s := store.NewCSVStore(',')
	outDir := filepath.Join(root, "output")

	registry := parser.NewRegistry()
	registry.Register(models.FileTypePDF, models.BankSBI,
		pdfparser.NewParser(logger, pdfparser.NewMockExtractor(pdfRows, nil), pdfparser.DefaultDateLayout))
	tabular := tabularparser.NewParser(logger, ',')
	registry.Register(models.FileTypeCSV, models.BankAny, tabular)
	registry.Register(models.FileTypeExcel, models.BankAny, tabular)

	writer := ledger.NewWriter(s, outDir, logger)
	generator := analysis.NewGenerator(writer, s, outDir, analysis.DefaultTopSenders, logger)

	inputDir := filepath.Join(root, "input")
	require.NoError(t, os.MkdirAll(inputDir, 0750))
	return fixture{
		pipeline: New(registry, writer, generator, logger),
		writer:   writer,
		logger:   logger,
		inputDir: inputDir,
		outDir:   outDir,
	}
}

func (f fixture) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.inputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const hdfcCSV = "Date,Narration,Amount,Balance\n" +
	"2024-04-15,UPI/CR/123456789/JOHN DOE,500.00,1500.00\n" +
	"2024-04-16,ATM WDL,-200.00,1300.00\n" +
	"2024-05-01,NEFT rent,-50,1250\n"

func TestIngest_CSV(t *testing.T) {
	f := newFixture(t, nil)
	path := f.file(t, "hdfc_april.csv", hdfcCSV)

	result, err := f.pipeline.Ingest(context.Background(), path)
	require.NoError(t, err)

	_, err = uuid.Parse(result.BatchID)
	assert.NoError(t, err)
	assert.Equal(t, models.Classification{FileType: models.FileTypeCSV, BankName: models.BankHDFC}, result.Classification)
	assert.Equal(t, tabularparser.Name, result.Parser)
	assert.Equal(t, 3, result.Parsed)
	assert.Equal(t, 3, result.Write.Added)
	assert.Equal(t, []string{"2024_04", "2024_05"}, result.Write.Months)
	require.Len(t, result.Summaries, 2)
	assert.Equal(t, "2024_04", result.Summaries[0].Month)
	assert.Equal(t, 2, result.Summaries[0].TransactionCount)

	layout := f.writer.Layout()
	for _, path := range []string{
		layout.MasterPath(),
		layout.MonthPath("2024_04"),
		layout.AnalysisPath("2024_04"),
		layout.AnalysisPath("2024_05"),
	} {
		assert.FileExists(t, path)
	}

	entries := f.logger.GetEntriesByLevel("INFO")
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "Statement ingested", last.Message)
	batch, ok := last.FieldValue(logging.FieldBatchID)
	assert.True(t, ok)
	assert.Equal(t, result.BatchID, batch)
}

func TestIngest_Idempotent(t *testing.T) {
	f := newFixture(t, nil)
	path := f.file(t, "hdfc_april.csv", hdfcCSV)

	first, err := f.pipeline.Ingest(context.Background(), path)
	require.NoError(t, err)
	second, err := f.pipeline.Ingest(context.Background(), path)
	require.NoError(t, err)

	assert.NotEqual(t, first.BatchID, second.BatchID)
	assert.Equal(t, 0, second.Write.Added)
	assert.Equal(t, 3, second.Write.Duplicates)

	master, err := f.writer.LoadMaster()
	require.NoError(t, err)
	assert.Len(t, master, 3)
}

func TestIngest_SBIPDF(t *testing.T) {
	rows := [][]string{
		{"Txn Date", "Description", "Ref No", "Debit", "Credit", "Balance"},
		{"15 Apr 2024", "UPI/CR/412345678901/JOHN DOE/HDFC", "", "", "500.00", "1,500.00"},
		{"16 Apr 2024", "ATM WDL", "", "200.00", "", "1,300.00"},
	}
	f := newFixture(t, rows)
	path := f.file(t, "sbi_statement.pdf", "%PDF-1.4")

	result, err := f.pipeline.Ingest(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, pdfparser.Name, result.Parser)
	assert.Equal(t, 2, result.Parsed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"2024_04"}, result.Write.Months)
}

func TestIngest_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "unknown extension", file: "notes.txt"},
		{name: "pdf from a bank without a pdf parser", file: "hdfc_statement.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			path := f.file(t, tt.file, "content")

			_, err := f.pipeline.Ingest(context.Background(), path)
			var unsupported *parsererror.UnsupportedFormatError
			require.True(t, errors.As(err, &unsupported))
			assert.NoFileExists(t, f.writer.Layout().MasterPath())
		})
	}
}

func TestIngest_NoTransactions(t *testing.T) {
	f := newFixture(t, nil)
	path := f.file(t, "empty.csv", "Date,Description,Amount\n")

	_, err := f.pipeline.Ingest(context.Background(), path)
	assert.ErrorIs(t, err, ErrNoTransactions)
	assert.NoFileExists(t, f.writer.Layout().MasterPath())
}

func TestIngest_ParseErrorLeavesLedgerUntouched(t *testing.T) {
	f := newFixture(t, nil)
	path := f.file(t, "bad.csv", "Date,Description,Amount\n2024-04-15,Salary,lots\n")

	_, err := f.pipeline.Ingest(context.Background(), path)
	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.NoFileExists(t, f.writer.Layout().MasterPath())
}

func TestIngest_RejectsMismatchedContent(t *testing.T) {
	f := newFixture(t, nil)
	path := f.file(t, "sbi_statement.pdf", "Date,Description,Amount\n")

	_, err := f.pipeline.Ingest(context.Background(), path)
	var invalid *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "PDF", invalid.ExpectedFormat)
	assert.NoFileExists(t, f.writer.Layout().MasterPath())
}
