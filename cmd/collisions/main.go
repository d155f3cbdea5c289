package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/collisions/config"
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/logging"
)

var version = "0.1.0-dev"

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "collisions",
		Short: "Event-driven hard disc simulation",
		Long: `collisions simulates discs, pistons and polygon obstacles by jumping from
one predicted contact to the next instead of stepping time.

A scenario is either a YAML file or the built-in "demo".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to a file instead of stderr")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Override the scenario seed (0 keeps it)")

	rootCmd.AddCommand(
		newRunCmd(),
		newViewCmd(),
		newCheckCmd(),
	)
	return rootCmd
}

// openLogger builds the logger from the persistent flags
// Without a log file, logs go to fallback
func openLogger(cmd *cobra.Command, fallback io.Writer) (*slog.Logger, func() error, error) {
	level, _ := cmd.Flags().GetString("log-level")
	path, _ := cmd.Flags().GetString("log-file")
	if path != "" {
		return logging.OpenFile(level, path)
	}
	return logging.NewLogger(level, fallback), func() error { return nil }, nil
}

// loadScenario reads the scenario named by args, defaulting to the demo
func loadScenario(cmd *cobra.Command, args []string) (*config.Scenario, error) {
	var cfg *config.Scenario
	if len(args) == 0 || args[0] == "demo" {
		cfg = config.Demo()
	} else {
		var err error
		if cfg, err = config.LoadFile(args[0]); err != nil {
			return nil, err
		}
	}
	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "scenario")
	}
	return cfg, nil
}
