// Package analyze implements the analyze command.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ledgerlens/ledgerlens/cmd/root"
	"ledgerlens/ledgerlens/internal/analysis"
	"ledgerlens/ledgerlens/internal/report"

	"github.com/spf13/cobra"
)

var (
	month  string
	format string
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Recompute and show the analysis of a month",
	Long: `Recompute the summary of a month from its monthly table, rewrite its
analysis file and print the summary.

Example:
  ledgerlens analyze --month 2024_04 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return run(cmd.Context(), cmd.OutOrStdout(), c.GetAnalyzer(), c.GetReporter(), month, format)
	},
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month to analyze (YYYY_MM)")
	Cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "Output format (text, json, yaml)")
	_ = Cmd.MarkFlagRequired("month")
}

func run(ctx context.Context, out io.Writer, analyzer *analysis.Generator, reporter *report.Generator, month, format string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	summary, err := analyzer.Analyze(ctx, month)
	if errors.Is(err, analysis.ErrNoMonthData) {
		fmt.Fprintf(out, "No data for %s\n", month)
		return nil
	}
	if err != nil {
		return err
	}

	rendered, err := reporter.RenderSummary(summary, f)
	if err != nil {
		return err
	}
	_, err = out.Write(rendered)
	return err
}
