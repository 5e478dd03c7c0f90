package main

import (
	"fmt"
	"os"

	"ledgerlens/ledgerlens/cmd/analyze"
	"ledgerlens/ledgerlens/cmd/detect"
	"ledgerlens/ledgerlens/cmd/ingest"
	"ledgerlens/ledgerlens/cmd/months"
	"ledgerlens/ledgerlens/cmd/root"
	"ledgerlens/ledgerlens/cmd/show"
	"ledgerlens/ledgerlens/cmd/watch"
	"ledgerlens/ledgerlens/internal/config"
)

func init() {
	// .env is loaded before the configuration reads the environment
	_, _ = config.LoadEnv()

	root.Init()

	root.Cmd.AddCommand(detect.Cmd)
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(months.Cmd)
	root.Cmd.AddCommand(show.Cmd)
	root.Cmd.AddCommand(watch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
