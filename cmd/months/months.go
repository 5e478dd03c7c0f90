// Package months implements the months command.
package months

import (
	"fmt"
	"io"

	"ledgerlens/ledgerlens/cmd/root"
	"ledgerlens/ledgerlens/internal/ledger"

	"github.com/spf13/cobra"
)

// Cmd represents the months command
var Cmd = &cobra.Command{
	Use:   "months",
	Short: "List the months present in the ledger, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return run(cmd.OutOrStdout(), c.GetLedger())
	},
}

func run(out io.Writer, w *ledger.Writer) error {
	months, err := w.Months()
	if err != nil {
		return err
	}
	if len(months) == 0 {
		fmt.Fprintln(out, "No months in the ledger yet")
		return nil
	}
	for _, m := range months {
		fmt.Fprintln(out, m)
	}
	return nil
}
