package analysis

import (
	"ledgerlens/ledgerlens/internal/models"

	"github.com/shopspring/decimal"
)

// Insights are the headline figures shown next to a transaction listing.
type Insights struct {
	Count       int                 `json:"count" yaml:"count"`
	TotalCredit decimal.Decimal     `json:"total_credit" yaml:"total_credit"`
	TotalDebit  decimal.Decimal     `json:"total_debit" yaml:"total_debit"`
	TopSender   *models.SenderCount `json:"top_sender,omitempty" yaml:"top_sender,omitempty"`
	// Largest is the transaction with the largest absolute amount; the
	// earliest one wins a tie.
	Largest *models.Transaction `json:"-" yaml:"-"`
}

// ComputeInsights summarizes any list of transactions.
func ComputeInsights(txs []models.Transaction) Insights {
	s := Compute("", txs, 1)
	insights := Insights{
		Count:       len(txs),
		TotalCredit: s.TotalCredit,
		TotalDebit:  s.TotalDebit,
	}
	if len(s.TopSenders) > 0 {
		top := s.TopSenders[0]
		insights.TopSender = &top
	}
	for i := range txs {
		if insights.Largest == nil || txs[i].Amount.Abs().GreaterThan(insights.Largest.Amount.Abs()) {
			largest := txs[i]
			insights.Largest = &largest
		}
	}
	return insights
}
