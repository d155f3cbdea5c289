package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/collisions/config"
	"github.com/lixenwraith/collisions/engine"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [scenario]",
		Short: "Validate a scenario and verify engine invariants while it runs",
		Long: `Validate a scenario, build it, then play ticks verifying the grid,
the prediction graph, the queue and population membership.

Examples:
  collisions check box.yaml                 # 1000 ticks, checked every tick
  collisions check box.yaml --ticks 0       # Validate and place only
  collisions check --dump > demo.yaml       # Write the demo scenario as YAML`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticks, _ := cmd.Flags().GetInt("ticks")
			every, _ := cmd.Flags().GetInt("every")
			dump, _ := cmd.Flags().GetBool("dump")

			logger, closeLog, err := openLogger(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			cfg, err := loadScenario(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dump {
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			s, err := engine.NewState(cfg, engine.WithLogger(logger))
			if err != nil {
				return err
			}
			if err := s.Check(); err != nil {
				return errors.Wrap(err, "after placement")
			}
			every = max(every, 1)
			for i := 1; i <= ticks; i++ {
				if _, ok := s.PlayNext(); !ok {
					break
				}
				if i%every == 0 {
					if err := s.Check(); err != nil {
						return errors.Wrapf(err, "tick %d at t=%s", i, s.Now())
					}
				}
			}
			c := s.Counters()
			fmt.Fprintf(out, "ok: %d particles, %d ticks, t=%s, %d collisions\n",
				len(s.Particles()), c.Ticks, s.Now(), c.Collisions)
			return nil
		},
	}
	cmd.Flags().Int("ticks", 1000, "Ticks to play")
	cmd.Flags().Int("every", 1, "Check every n ticks")
	cmd.Flags().Bool("dump", false, "Print the validated scenario as YAML and exit")
	return cmd
}
