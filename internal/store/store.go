// Package store persists ledger tables and monthly summaries as csv or xlsx
// files. Every write replaces the whole file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ledgerlens/ledgerlens/internal/models"
)

// ErrCorruptTable is wrapped by read errors caused by file contents rather
// than I/O.
var ErrCorruptTable = errors.New("corrupt table")

// Columns is the column order of every transaction table.
var Columns = []string{"Date", "Description", "Amount", "Type", "Balance", "Sender", "Reference"}

// Section names of an analysis file.
const (
	SectionSummary    = "Summary"
	SectionTopSenders = "Top Senders"
)

// File name parts of the storage layout.
const (
	MasterName       = "All_Transactions"
	MonthPrefix      = "Bank_Statement_"
	AnalysisPrefix   = "Analysis_"
	transactionSheet = "Transactions"
)

// TableStore reads and writes the files of the storage layout.
//
// ReadTransactions returns an error wrapping fs.ErrNotExist for a missing
// file and one wrapping ErrCorruptTable for a file it cannot interpret.
type TableStore interface {
	// Extension is the file extension without the dot, e.g. "csv".
	Extension() string
	ReadTransactions(path string) ([]models.Transaction, error)
	WriteTransactions(path string, txs []models.Transaction) error
	WriteSummary(path string, summary models.Summary) error
}

// New returns the TableStore for a configured output format.
func New(format string, delimiter rune) (TableStore, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		return NewCSVStore(delimiter), nil
	case "xlsx":
		return NewXLSXStore(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Layout names the files of an output directory.
type Layout struct {
	Dir string
	Ext string
}

// NewLayout creates the Layout of dir for a store.
func NewLayout(dir string, s TableStore) Layout {
	return Layout{Dir: dir, Ext: s.Extension()}
}

// MasterPath is the path of the master table.
func (l Layout) MasterPath() string {
	return filepath.Join(l.Dir, MasterName+"."+l.Ext)
}

// MonthPath is the path of the monthly table of a YYYY_MM month.
func (l Layout) MonthPath(month string) string {
	return filepath.Join(l.Dir, MonthPrefix+month+"."+l.Ext)
}

// AnalysisPath is the path of the analysis file of a YYYY_MM month.
func (l Layout) AnalysisPath(month string) string {
	return filepath.Join(l.Dir, AnalysisPrefix+month+"."+l.Ext)
}

// Months lists the months that have a monthly table, newest first.
// A missing directory has no months.
func (l Layout) Months() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", l.Dir, err)
	}

	suffix := "." + l.Ext
	var months []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, MonthPrefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		month := strings.TrimSuffix(strings.TrimPrefix(name, MonthPrefix), suffix)
		if _, err := models.ParseMonthLabel(month); err != nil {
			continue
		}
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

func corrupt(path, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %s", path, ErrCorruptTable, fmt.Sprintf(format, args...))
}
