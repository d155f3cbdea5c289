package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/engine"
	"github.com/lixenwraith/collisions/render"
	"github.com/lixenwraith/collisions/stats"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run a scenario headless and print a summary",
		Long: `Run a scenario without a display until the given simulation time.

Examples:
  collisions run                           # Demo scene for 100 time units
  collisions run box.yaml --until 20       # Custom scene
  collisions run --csv probes.csv --plot   # Export probes and chart them`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			until, _ := cmd.Flags().GetFloat64("until")
			csvPath, _ := cmd.Flags().GetString("csv")
			plot, _ := cmd.Flags().GetBool("plot")
			width, _ := cmd.Flags().GetInt("width")

			logger, closeLog, err := openLogger(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			cfg, err := loadScenario(cmd, args)
			if err != nil {
				return err
			}

			probes, profiles := stats.Names(cfg.Probes), stats.ProfileNames(cfg.Profiles)
			group := stats.NewGroup(probes, profiles, cfg.Lifespan)
			sinks := stats.Multi{group}
			var csvSink *stats.CSV
			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return errors.Wrap(err, "csv output")
				}
				defer f.Close()
				csvSink = stats.NewCSV(f, probes, profiles)
				sinks = append(sinks, csvSink)
			}

			start := time.Now()
			s, err := engine.NewState(cfg, engine.WithLogger(logger), engine.WithSink(sinks))
			if err != nil {
				return err
			}
			s.PlayUntil(core.At(until))
			elapsed := time.Since(start)
			if csvSink != nil {
				csvSink.Flush(s.Now().Seconds())
				if err := csvSink.Err(); err != nil {
					return errors.Wrap(err, "csv output")
				}
			}

			c := s.Counters()
			logger.Info("run finished",
				"t", s.Now(),
				"collisions", c.Collisions,
				"events", c.Events,
				"elapsed", elapsed.Round(time.Millisecond),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Summary(s))
			if plot {
				fmt.Fprintln(out, render.Plots(group, width, 8))
			}
			return nil
		},
	}
	cmd.Flags().Float64("until", 100, "Simulation time to stop at")
	cmd.Flags().String("csv", "", "Write probe and profile samples as CSV")
	cmd.Flags().Bool("plot", false, "Chart probe curves after the run")
	cmd.Flags().Int("width", 60, "Chart width in columns")
	return cmd
}
