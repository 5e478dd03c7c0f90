// Package ledger maintains the master table and its monthly partitions.
//
// The master table is the deduplicated union of every ingested batch in
// insertion order. Each monthly table is exactly the subset of the master
// whose date falls in that month. Both are rewritten in full on every write.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/store"
)

// ErrNoMonthData is returned when a month has no monthly table.
var ErrNoMonthData = errors.New("no data found for this month")

// WriteResult describes the effect of one Write.
type WriteResult struct {
	// Added is the number of batch records that were new to the master.
	Added int
	// Duplicates is the number of batch records already present.
	Duplicates int
	// Total is the size of the master after the write.
	Total int
	// Months are the months touched by the batch, ascending.
	Months []string
}

// Writer merges batches into the ledger of one output directory.
type Writer struct {
	store  store.TableStore
	layout store.Layout
	logger logging.Logger
}

// NewWriter creates a Writer storing tables in outputDir.
func NewWriter(s store.TableStore, outputDir string, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{
		store:  s,
		layout: store.NewLayout(outputDir, s),
		logger: logger.WithField(logging.FieldDirectory, outputDir),
	}
}

// Layout returns the file layout of the ledger.
func (w *Writer) Layout() store.Layout {
	return w.layout
}

// Write appends the batch to the master table, drops records whose identity
// key is already present, rewrites the master and rewrites every monthly
// table from the result. Records without a date stay in the master only.
func (w *Writer) Write(ctx context.Context, batch []models.Transaction) (WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return WriteResult{}, err
	}

	lock, err := acquireLock(w.layout.Dir)
	if err != nil {
		return WriteResult{}, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			w.logger.WithError(err).Warn("Failed to release ledger lock")
		}
	}()

	existing, err := w.LoadMaster()
	if err != nil {
		return WriteResult{}, err
	}

	master, _ := models.Dedup(existing)
	seen := make(map[models.IdentityKey]struct{}, len(master)+len(batch))
	for _, tx := range master {
		seen[tx.Key()] = struct{}{}
	}

	var result WriteResult
	for _, tx := range batch {
		key := tx.Key()
		if _, ok := seen[key]; ok {
			result.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		master = append(master, tx)
		result.Added++
	}
	result.Total = len(master)

	if err := ctx.Err(); err != nil {
		return WriteResult{}, err
	}
	if err := w.store.WriteTransactions(w.layout.MasterPath(), master); err != nil {
		return WriteResult{}, fmt.Errorf("failed to write master table: %w", err)
	}

	partitions, undated := Partition(master)
	if undated > 0 {
		w.logger.Warn("Records without a date are kept in the master table only",
			logging.F(logging.FieldCount, undated))
	}

	months := make([]string, 0, len(partitions))
	for month := range partitions {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		if err := w.store.WriteTransactions(w.layout.MonthPath(month), partitions[month]); err != nil {
			return WriteResult{}, fmt.Errorf("failed to write monthly table %s: %w", month, err)
		}
	}

	result.Months = batchMonths(batch)
	w.logger.Info("Ledger updated",
		logging.F("added", result.Added),
		logging.F(logging.FieldDuplicates, result.Duplicates),
		logging.F("total", result.Total),
		logging.F("months", result.Months))
	return result, nil
}

// LoadMaster reads the master table. A missing master is empty; an
// unreadable one is an error.
func (w *Writer) LoadMaster() ([]models.Transaction, error) {
	txs, err := w.store.ReadTransactions(w.layout.MasterPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load master table: %w", err)
	}
	return txs, nil
}

// LoadMonth reads the monthly table of a YYYY_MM month. A missing table
// yields ErrNoMonthData.
func (w *Writer) LoadMonth(month string) ([]models.Transaction, error) {
	if _, err := models.ParseMonthLabel(month); err != nil {
		return nil, err
	}
	txs, err := w.store.ReadTransactions(w.layout.MonthPath(month))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoMonthData, month)
		}
		return nil, fmt.Errorf("failed to load monthly table %s: %w", month, err)
	}
	return txs, nil
}

// Months lists the months with a monthly table, newest first.
func (w *Writer) Months() ([]string, error) {
	return w.layout.Months()
}

// Partition groups transactions by YYYY_MM month, preserving order, and
// counts the records without a date.
func Partition(txs []models.Transaction) (map[string][]models.Transaction, int) {
	partitions := make(map[string][]models.Transaction)
	undated := 0
	for _, tx := range txs {
		month := tx.Month()
		if month == "" {
			undated++
			continue
		}
		partitions[month] = append(partitions[month], tx)
	}
	return partitions, undated
}

func batchMonths(batch []models.Transaction) []string {
	seen := make(map[string]struct{})
	var months []string
	for _, tx := range batch {
		month := tx.Month()
		if month == "" {
			continue
		}
		if _, ok := seen[month]; ok {
			continue
		}
		seen[month] = struct{}{}
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}
