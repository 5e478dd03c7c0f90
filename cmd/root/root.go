// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"ledgerlens/ledgerlens/internal/config"
	"ledgerlens/ledgerlens/internal/container"
	"ledgerlens/ledgerlens/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// ConfigFile is the --config flag value.
	ConfigFile string

	// AppContainer is built by PersistentPreRunE from the loaded configuration.
	AppContainer *container.Container

	initOnce sync.Once

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledgerlens",
		Short: "A CLI tool to ingest bank statements into a monthly ledger and analyze it.",
		Long: `ledgerlens ingests bank statements (SBI PDF, CSV, Excel) into a
deduplicated master ledger, partitions it by month and computes a summary
analysis for every month touched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigWithFlags(ConfigFile, cmd.Flags())
			if err != nil {
				return err
			}
			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			AppContainer = c
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVar(&ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.ledgerlens, .ledgerlens or .)")
		flags.String("log-level", "", "Log level (debug, info, warn, error)")
		flags.String("log-format", "", "Log format (text, json)")
		flags.String("input-dir", "", "Directory watched for new statements")
		flags.String("output-dir", "", "Directory holding the ledger and analysis files")
		flags.String("output-format", "", "Ledger table format (csv, xlsx)")
		flags.String("csv-delimiter", "", "Delimiter of CSV statements and ledger tables")
	})
}

// GetContainer returns the application container. It fails when called
// outside a command run.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application container is not initialized")
	}
	return AppContainer, nil
}

// GetLogger returns the application logger, or a default one before the
// container exists.
func GetLogger() logging.Logger {
	if AppContainer == nil {
		return logging.NewLogrusAdapter("info", "text")
	}
	return AppContainer.GetLogger()
}
