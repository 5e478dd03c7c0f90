// Package detect implements the detect command.
package detect

import (
	"fmt"
	"io"

	"ledgerlens/ledgerlens/cmd/root"
	"ledgerlens/ledgerlens/internal/detector"
	"ledgerlens/ledgerlens/internal/parser"

	"github.com/spf13/cobra"
)

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Show how a statement file is classified",
	Long: `Classify a statement file by its name and report the parser that would
handle it. The file is not read.

Example:
  ledgerlens detect input/sbi_april.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return run(cmd.OutOrStdout(), c.GetRegistry(), args[0])
	},
}

func run(out io.Writer, registry *parser.Registry, filePath string) error {
	class := detector.Detect(filePath)
	fmt.Fprintf(out, "File type: %s\n", class.FileType)
	fmt.Fprintf(out, "Bank:      %s\n", class.BankName)

	p, err := registry.Lookup(filePath, class)
	if err != nil {
		fmt.Fprintln(out, "Parser:    none (unsupported)")
		return nil
	}
	fmt.Fprintf(out, "Parser:    %s\n", p.Name())
	return nil
}
