package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// SenderCount is one row of the top senders table.
type SenderCount struct {
	Sender string `json:"sender" yaml:"sender"`
	Count  int    `json:"count" yaml:"count"`
}

// Summary holds the aggregate metrics of one month.
type Summary struct {
	Month            string          `json:"month" yaml:"month"`
	TransactionCount int             `json:"transaction_count" yaml:"transaction_count"`
	TotalCredit      decimal.Decimal `json:"total_credit" yaml:"total_credit"`
	TotalDebit       decimal.Decimal `json:"total_debit" yaml:"total_debit"`
	DailyAverage     decimal.Decimal `json:"daily_average" yaml:"daily_average"`
	UPICount         int             `json:"upi_count" yaml:"upi_count"`
	NEFTCount        int             `json:"neft_count" yaml:"neft_count"`
	ATMCount         int             `json:"atm_count" yaml:"atm_count"`
	TopSenders       []SenderCount   `json:"top_senders" yaml:"top_senders"`
}

// Metric is a named summary value as written to the Summary section.
type Metric struct {
	Name  string
	Value string
}

// Summary metric names.
const (
	MetricTotalCredit = "Total Credit"
	MetricTotalDebit  = "Total Debit"
	MetricDailyAvg    = "Daily Avg"
	MetricUPI         = "UPI Txns"
	MetricNEFT        = "NEFT Txns"
	MetricATM         = "ATM Txns"
)

// Metrics returns the metric/value pairs of the Summary section in report order.
func (s Summary) Metrics() []Metric {
	return []Metric{
		{Name: MetricTotalCredit, Value: s.TotalCredit.StringFixed(2)},
		{Name: MetricTotalDebit, Value: s.TotalDebit.StringFixed(2)},
		{Name: MetricDailyAvg, Value: s.DailyAverage.StringFixed(2)},
		{Name: MetricUPI, Value: strconv.Itoa(s.UPICount)},
		{Name: MetricNEFT, Value: strconv.Itoa(s.NEFTCount)},
		{Name: MetricATM, Value: strconv.Itoa(s.ATMCount)},
	}
}

