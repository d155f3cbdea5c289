package main

import (
	"context"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/collisions/audio"
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/engine"
	"github.com/lixenwraith/collisions/render"
	"github.com/lixenwraith/collisions/stats"
	"github.com/lixenwraith/collisions/status"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [scenario]",
		Short: "Watch a scenario in the terminal",
		Long: `Watch a scenario in the terminal with live probe charts.

Keys: space pause, r restart, +/- speed, m mute, q quit.
Logs are discarded unless --log-file is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mute, _ := cmd.Flags().GetBool("mute")

			// The terminal belongs to the viewer
			logger, closeLog, err := openLogger(cmd, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			cfg, err := loadScenario(cmd, args)
			if err != nil {
				return err
			}
			group := stats.NewGroup(stats.Names(cfg.Probes), stats.ProfileNames(cfg.Profiles), cfg.Lifespan)
			s, err := engine.NewState(cfg, engine.WithLogger(logger), engine.WithSink(group))
			if err != nil {
				return err
			}

			var sound *audio.Sonifier
			if !mute {
				sound = audio.NewSonifier()
				if err := sound.Initialize(); err != nil {
					logger.Warn("audio unavailable, continuing without sound", "error", err)
					sound = nil
				} else {
					defer sound.Close()
				}
			}

			registry := status.NewRegistry()
			driver := render.NewDriver(s, group, registry, logger)
			viewer, err := render.NewViewer(driver, group, registry, sound)
			if err != nil {
				return err
			}
			core.SetCrashCleanup(viewer.Close)
			defer viewer.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var wg sync.WaitGroup
			var runErr error
			wg.Add(1)
			core.Go(func() {
				defer wg.Done()
				if err := driver.Run(ctx); err != nil {
					runErr = err
					cancel()
				}
			})
			viewer.Run(ctx, cancel)
			cancel()
			wg.Wait()
			return runErr
		},
	}
	cmd.Flags().Bool("mute", false, "Disable collision clicks")
	return cmd
}
