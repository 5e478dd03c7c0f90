// Package watch implements the watch command.
package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ledgerlens/ledgerlens/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the watch command
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Ingest every statement dropped into the input directory",
	Long: `Watch the input directory and ingest each statement placed in it, one at
a time. Files already present are ingested first. A file is deleted once it
was ingested and left in place when ingestion fails. Stop with Ctrl+C.

Example:
  ledgerlens watch --input-dir input`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return c.GetWatcher().Run(ctx)
	},
}
