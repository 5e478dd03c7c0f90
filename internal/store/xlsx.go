package store

import (
	"fmt"
	"os"
	"strings"

	"ledgerlens/ledgerlens/internal/fileutils"
	"ledgerlens/ledgerlens/internal/models"

	"github.com/xuri/excelize/v2"
)

// XLSXStore stores tables as Office Open XML workbooks through excelize.
type XLSXStore struct{}

// NewXLSXStore creates an XLSXStore.
func NewXLSXStore() *XLSXStore {
	return &XLSXStore{}
}

// Extension implements TableStore.
func (s *XLSXStore) Extension() string {
	return "xlsx"
}

// ReadTransactions implements TableStore. The first sheet must start with
// the Columns header.
func (s *XLSXStore) ReadTransactions(path string) ([]models.Transaction, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error opening table: %w", err)
	}
	if info.Size() == 0 {
		return nil, corrupt(path, "empty file")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, corrupt(path, "%v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, corrupt(path, "no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, corrupt(path, "%v", err)
	}
	if len(rows) == 0 {
		return nil, corrupt(path, "empty sheet")
	}
	if !isTableHeader(rows[0]) {
		return nil, corrupt(path, "unexpected header %v", rows[0])
	}

	txs := make([]models.Transaction, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		tx, reason := toTransaction(rowFromCells(cells))
		if reason != "" {
			return nil, corrupt(path, "row %d: %s", i+2, reason)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func isTableHeader(cells []string) bool {
	if len(cells) < len(Columns) {
		return false
	}
	for i, name := range Columns {
		if strings.TrimSpace(cells[i]) != name {
			return false
		}
	}
	return true
}

// WriteTransactions implements TableStore.
func (s *XLSXStore) WriteTransactions(path string, txs []models.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), transactionSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	table := make([][]interface{}, 0, len(txs)+1)
	table = append(table, stringsToCells(Columns))
	for _, tx := range txs {
		table = append(table, stringsToCells(toRow(tx).cells()))
	}
	if err := writeSheet(f, transactionSheet, table); err != nil {
		return err
	}
	return save(f, path)
}

// WriteSummary implements TableStore with one sheet per section.
func (s *XLSXStore) WriteSummary(path string, summary models.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SectionSummary); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SectionTopSenders); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	metrics := [][]interface{}{{"Metric", "Value"}, {"Month", summary.Month}}
	for _, m := range summary.Metrics() {
		metrics = append(metrics, []interface{}{m.Name, m.Value})
	}
	if err := writeSheet(f, SectionSummary, metrics); err != nil {
		return err
	}

	senders := [][]interface{}{{"Sender", "Count"}}
	for _, sc := range summary.TopSenders {
		senders = append(senders, []interface{}{sc.Sender, sc.Count})
	}
	if err := writeSheet(f, SectionTopSenders, senders); err != nil {
		return err
	}
	return save(f, path)
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func save(f *excelize.File, path string) error {
	err := fileutils.WriteFileAtomic(path, func(file *os.File) error {
		if err := f.Write(file); err != nil {
			return fmt.Errorf("error writing workbook: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
