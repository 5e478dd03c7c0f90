// Package ingest implements the ingest command.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ledgerlens/ledgerlens/cmd/root"
	"ledgerlens/ledgerlens/internal/batch"
	"ledgerlens/ledgerlens/internal/fileutils"
	"ledgerlens/ledgerlens/internal/ledger"
	"ledgerlens/ledgerlens/internal/pipeline"

	"github.com/spf13/cobra"
)

var inputPath string

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest statements into the ledger",
	Long: `Parse a statement, merge its transactions into the master ledger,
rewrite the monthly tables and refresh the analysis of every month it touches.

When the input is a directory every statement in it is ingested, in name
order. Files are never deleted.

Examples:
  ledgerlens ingest -i input/sbi_april.pdf
  ledgerlens ingest -i statements/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if fileutils.DirectoryExists(inputPath) {
			return runBatch(ctx, cmd.OutOrStdout(), c.GetBatchProcessor(), inputPath)
		}
		return run(ctx, cmd.OutOrStdout(), c.GetPipeline(), inputPath)
	},
}

func init() {
	Cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Statement file or directory to ingest")
	_ = Cmd.MarkFlagRequired("input")
}

func run(ctx context.Context, out io.Writer, p *pipeline.Pipeline, filePath string) error {
	result, err := p.Ingest(ctx, filePath)
	if errors.Is(err, ledger.ErrLedgerLocked) {
		return fmt.Errorf("%w: retry once the other ingestion has finished", err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Ingested %s as %s (%s)\n", filePath, result.Classification, result.Parser)
	fmt.Fprintf(out, "Parsed: %d, skipped rows: %d\n", result.Parsed, result.Skipped)
	fmt.Fprintf(out, "Added: %d, duplicates: %d, ledger total: %d\n",
		result.Write.Added, result.Write.Duplicates, result.Write.Total)
	printMonths(out, result.Write.Months)
	return nil
}

func runBatch(ctx context.Context, out io.Writer, p *batch.Processor, dir string) error {
	report, err := p.ProcessDirectory(ctx, dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Processed %d files: %d ingested, %d failed\n", report.Files, report.Succeeded, len(report.Failed))
	fmt.Fprintf(out, "Parsed: %d, skipped rows: %d\n", report.Parsed, report.Skipped)
	fmt.Fprintf(out, "Added: %d, duplicates: %d\n", report.Added, report.Duplicates)
	printMonths(out, report.Months)
	for _, f := range report.Failed {
		fmt.Fprintf(out, "Failed: %s: %v\n", f.File, f.Err)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(report.Failed), report.Files)
	}
	return nil
}

func printMonths(out io.Writer, months []string) {
	if len(months) > 0 {
		fmt.Fprintf(out, "Months updated: %s\n", strings.Join(months, ", "))
	}
}
