// Package report renders summaries and transaction listings for the CLI.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ledgerlens/ledgerlens/internal/analysis"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"

	"gopkg.in/yaml.v3"
)

// Format is an output format of the report generator.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// summaryView is the serialized form of a summary, amounts fixed to two
// decimals.
type summaryView struct {
	Month            string               `json:"month" yaml:"month"`
	TransactionCount int                  `json:"transaction_count" yaml:"transaction_count"`
	TotalCredit      string               `json:"total_credit" yaml:"total_credit"`
	TotalDebit       string               `json:"total_debit" yaml:"total_debit"`
	DailyAverage     string               `json:"daily_average" yaml:"daily_average"`
	UPICount         int                  `json:"upi_count" yaml:"upi_count"`
	NEFTCount        int                  `json:"neft_count" yaml:"neft_count"`
	ATMCount         int                  `json:"atm_count" yaml:"atm_count"`
	TopSenders       []models.SenderCount `json:"top_senders" yaml:"top_senders"`
}

func viewOf(s models.Summary) summaryView {
	senders := s.TopSenders
	if senders == nil {
		senders = []models.SenderCount{}
	}
	return summaryView{
		Month:            s.Month,
		TransactionCount: s.TransactionCount,
		TotalCredit:      s.TotalCredit.StringFixed(2),
		TotalDebit:       s.TotalDebit.StringFixed(2),
		DailyAverage:     s.DailyAverage.StringFixed(2),
		UPICount:         s.UPICount,
		NEFTCount:        s.NEFTCount,
		ATMCount:         s.ATMCount,
		TopSenders:       senders,
	}
}

// Generator renders reports.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new instance of Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{logger: logger.WithField("component", "ReportGenerator")}
}

// RenderSummary renders a monthly summary in the given format.
func (g *Generator) RenderSummary(s models.Summary, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(viewOf(s), "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(viewOf(s))
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	case FormatText:
		return g.summaryText(s)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) summaryText(s models.Summary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Analysis for %s (%d transactions)\n\n", s.Month, s.TransactionCount)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Metric\tValue")
	for _, m := range s.Metrics() {
		fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Value)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	buf.WriteString("\nTop Senders\n")
	if len(s.TopSenders) == 0 {
		buf.WriteString("(none)\n")
		return buf.Bytes(), nil
	}
	tw = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Sender\tCount")
	for _, sc := range s.TopSenders {
		fmt.Fprintf(tw, "%s\t%d\n", sc.Sender, sc.Count)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTransactions writes a transaction listing followed by its headline
// insights.
func (g *Generator) WriteTransactions(w io.Writer, txs []models.Transaction, insights analysis.Insights) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tType\tAmount\tSender\tReference\tDescription")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			dash(tx.FormattedDate()), tx.Type, tx.Amount.StringFixed(2),
			dash(tx.Sender), dash(tx.Reference), tx.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d transactions\n", insights.Count)
	fmt.Fprintf(w, "Total credit: %s\n", insights.TotalCredit.StringFixed(2))
	fmt.Fprintf(w, "Total debit:  %s\n", insights.TotalDebit.StringFixed(2))
	if insights.TopSender != nil {
		fmt.Fprintf(w, "Top sender:   %s (%d)\n", insights.TopSender.Sender, insights.TopSender.Count)
	}
	if insights.Largest != nil {
		fmt.Fprintf(w, "Largest:      %s\n", insights.Largest.String())
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
