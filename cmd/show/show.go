// Package show implements the show command.
package show

import (
	"errors"
	"fmt"
	"io"

	"ledgerlens/ledgerlens/cmd/root"
	"ledgerlens/ledgerlens/internal/analysis"
	"ledgerlens/ledgerlens/internal/ledger"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/report"

	"github.com/spf13/cobra"
)

// Options are the filters of the show command.
type Options struct {
	Month   string
	Sender  string
	Type    string
	Keyword string
}

var opts Options

// Cmd represents the show command
var Cmd = &cobra.Command{
	Use:   "show",
	Short: "List the transactions of a month",
	Long: `List the transactions of a month, optionally filtered, followed by the
total credit, total debit, top sender and largest transaction of the listing.

Example:
  ledgerlens show --month 2024_04 --type DR --keyword atm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return run(cmd.OutOrStdout(), c.GetLedger(), c.GetReporter(), opts)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Month, "month", "m", "", "Month to show (YYYY_MM)")
	Cmd.Flags().StringVar(&opts.Sender, "sender", "", "Only transactions from this sender")
	Cmd.Flags().StringVar(&opts.Type, "type", "", "Only CR or DR transactions")
	Cmd.Flags().StringVar(&opts.Keyword, "keyword", "", "Only transactions whose description contains this text")
	_ = Cmd.MarkFlagRequired("month")
}

func run(out io.Writer, w *ledger.Writer, reporter *report.Generator, o Options) error {
	filter := ledger.Filter{Sender: o.Sender, Keyword: o.Keyword}
	if o.Type != "" {
		t, ok := models.ParseTransactionType(o.Type)
		if !ok {
			return fmt.Errorf("invalid transaction type %q (must be CR or DR)", o.Type)
		}
		filter.Type = t
	}

	txs, err := w.LoadMonth(o.Month)
	if errors.Is(err, ledger.ErrNoMonthData) {
		fmt.Fprintf(out, "No data for %s\n", o.Month)
		return nil
	}
	if err != nil {
		return err
	}

	selected := filter.Apply(txs)
	return reporter.WriteTransactions(out, selected, analysis.ComputeInsights(selected))
}
