// Package analysis computes and stores the monthly summary of the ledger.
package analysis

import (
	"context"
	"fmt"
	"sort"

	"ledgerlens/ledgerlens/internal/dateutils"
	"ledgerlens/ledgerlens/internal/fileutils"
	"ledgerlens/ledgerlens/internal/ledger"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/store"
	"ledgerlens/ledgerlens/internal/textutils"

	"github.com/shopspring/decimal"
)

// ErrNoMonthData is returned by Analyze when the month has no monthly table.
var ErrNoMonthData = ledger.ErrNoMonthData

// DefaultTopSenders is the length of the top senders table.
const DefaultTopSenders = 5

// Description markers counted in the summary.
const (
	markerUPI  = "UPI"
	markerNEFT = "NEFT"
	markerATM  = "ATM"
)

// MonthSource provides the monthly tables to analyze.
type MonthSource interface {
	LoadMonth(month string) ([]models.Transaction, error)
}

// Generator builds the analysis file of a month from its monthly table.
type Generator struct {
	source     MonthSource
	store      store.TableStore
	layout     store.Layout
	topSenders int
	logger     logging.Logger
}

// NewGenerator creates a Generator writing analysis files to outputDir.
// topSenders below one selects DefaultTopSenders.
func NewGenerator(source MonthSource, s store.TableStore, outputDir string, topSenders int, logger logging.Logger) *Generator {
	if topSenders < 1 {
		topSenders = DefaultTopSenders
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{
		source:     source,
		store:      s,
		layout:     store.NewLayout(outputDir, s),
		topSenders: topSenders,
		logger:     logger,
	}
}

// Analyze recomputes the summary of month and replaces its analysis file.
// A month without a monthly table yields ErrNoMonthData.
func (g *Generator) Analyze(ctx context.Context, month string) (models.Summary, error) {
	if err := ctx.Err(); err != nil {
		return models.Summary{}, err
	}

	txs, err := g.source.LoadMonth(month)
	if err != nil {
		return models.Summary{}, err
	}

	summary := Compute(month, txs, g.topSenders)

	path := g.layout.AnalysisPath(month)
	if err := fileutils.RemoveIfExists(path); err != nil {
		return models.Summary{}, fmt.Errorf("failed to discard previous analysis: %w", err)
	}
	if err := g.store.WriteSummary(path, summary); err != nil {
		return models.Summary{}, fmt.Errorf("failed to write analysis for %s: %w", month, err)
	}

	g.logger.Info("Analysis generated",
		logging.F(logging.FieldMonth, month),
		logging.F(logging.FieldCount, summary.TransactionCount),
		logging.F(logging.FieldOutputFile, path))
	return summary, nil
}

// Compute summarizes the transactions of one month. It depends on nothing
// but its arguments.
func Compute(month string, txs []models.Transaction, topSenders int) models.Summary {
	summary := models.Summary{
		Month:            month,
		TransactionCount: len(txs),
		TotalCredit:      decimal.Zero,
		TotalDebit:       decimal.Zero,
		DailyAverage:     decimal.Zero,
		TopSenders:       []models.SenderCount{},
	}

	daily := make(map[string]decimal.Decimal)
	senders := make(map[string]int)
	for _, tx := range txs {
		switch {
		case tx.Amount.IsPositive():
			summary.TotalCredit = summary.TotalCredit.Add(tx.Amount)
		case tx.Amount.IsNegative():
			summary.TotalDebit = summary.TotalDebit.Add(tx.Amount)
		}

		if tx.HasDate() {
			day := dateutils.DayKey(tx.Date)
			daily[day] = daily[day].Add(tx.Amount)
		}

		if textutils.ContainsFold(tx.Description, markerUPI) {
			summary.UPICount++
		}
		if textutils.ContainsFold(tx.Description, markerNEFT) {
			summary.NEFTCount++
		}
		if textutils.ContainsFold(tx.Description, markerATM) {
			summary.ATMCount++
		}

		if tx.Sender != "" {
			senders[tx.Sender]++
		}
	}

	if len(daily) > 0 {
		total := decimal.Zero
		for _, net := range daily {
			total = total.Add(net)
		}
		summary.DailyAverage = total.Div(decimal.NewFromInt(int64(len(daily))))
	}

	summary.TopSenders = rankSenders(senders, topSenders)
	return summary
}

// rankSenders orders senders by count, descending, then by name.
func rankSenders(counts map[string]int, limit int) []models.SenderCount {
	ranked := make([]models.SenderCount, 0, len(counts))
	for sender, count := range counts {
		ranked = append(ranked, models.SenderCount{Sender: sender, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Sender < ranked[j].Sender
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
