package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"ledgerlens/ledgerlens/internal/fileutils"
	"ledgerlens/ledgerlens/internal/models"

	"github.com/gocarina/gocsv"
)

// summaryRow is one line of a csv analysis file. Both sections share the file
// and are told apart by Section.
type summaryRow struct {
	Section string `csv:"Section"`
	Key     string `csv:"Key"`
	Value   string `csv:"Value"`
}

// CSVStore stores tables as delimited text through gocsv.
type CSVStore struct {
	delimiter rune
}

// NewCSVStore creates a CSVStore; zero delimiter selects a comma.
func NewCSVStore(delimiter rune) *CSVStore {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVStore{delimiter: delimiter}
}

// Extension implements TableStore.
func (s *CSVStore) Extension() string {
	return "csv"
}

// ReadTransactions implements TableStore.
func (s *CSVStore) ReadTransactions(path string) ([]models.Transaction, error) {
	file, err := os.Open(path) // #nosec G304 -- paths come from the configured output directory
	if err != nil {
		return nil, fmt.Errorf("error opening table: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.Comma = s.delimiter

	// The store always writes the header, so a file without one was
	// truncated or written by something else.
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, corrupt(path, "empty file")
	}
	if err != nil {
		return nil, corrupt(path, "%v", err)
	}
	if len(header) != len(Columns) || !isTableHeader(header) {
		return nil, corrupt(path, "unexpected header %v", header)
	}

	var rows []transactionRow
	err = gocsv.UnmarshalCSVWithoutHeaders(reader, &rows)
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return []models.Transaction{}, nil
	}
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("error reading table: %w", err)
		}
		return nil, corrupt(path, "%v", err)
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, reason := toTransaction(row)
		if reason != "" {
			return nil, corrupt(path, "row %d: %s", i+2, reason)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions implements TableStore.
func (s *CSVStore) WriteTransactions(path string, txs []models.Transaction) error {
	rows := make([]transactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, toRow(tx))
	}
	return s.marshal(path, &rows)
}

// WriteSummary implements TableStore.
func (s *CSVStore) WriteSummary(path string, summary models.Summary) error {
	rows := []summaryRow{{Section: SectionSummary, Key: "Month", Value: summary.Month}}
	for _, m := range summary.Metrics() {
		rows = append(rows, summaryRow{Section: SectionSummary, Key: m.Name, Value: m.Value})
	}
	for _, sc := range summary.TopSenders {
		rows = append(rows, summaryRow{Section: SectionTopSenders, Key: sc.Sender, Value: fmt.Sprint(sc.Count)})
	}
	return s.marshal(path, &rows)
}

func (s *CSVStore) marshal(path string, rows interface{}) error {
	err := fileutils.WriteFileAtomic(path, func(file *os.File) error {
		csvWriter := csv.NewWriter(file)
		csvWriter.Comma = s.delimiter
		if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
			return fmt.Errorf("error writing CSV data: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
