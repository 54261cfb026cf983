package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gridmind/cmd/gridmind/ui"
	"gridmind/internal/sim"
	"gridmind/internal/world"
)

// newVacuumCmd runs the reactive cleaner.
func newVacuumCmd() *cobra.Command {
	var (
		steps   int
		terrain string
		watch   time.Duration
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "vacuum",
		Short: "Run the reactive vacuum cleaner on a generated floor",
		Long: `Generates a floor from the configured seed and runs the vacuum agent until
the floor is clean, the battery is flat or the step budget is spent.

Example:
  gridmind vacuum --steps 80 --terrain noise --watch 100ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vc := cfg.VacuumEpisode()
			if cmd.Flags().Changed("steps") {
				vc.Steps = steps
			}
			if terrain != "" {
				vc.Gen.Terrain = terrain
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			var observe func(*world.VacuumWorld)
			if watch > 0 {
				observe = func(v *world.VacuumWorld) {
					fmt.Fprintln(out, world.RenderVacuum(v))
					time.Sleep(watch)
				}
			}
			res, err := sim.RunVacuum(ctx, vc, observe)
			if err != nil {
				return err
			}
			logger.Debug("vacuum finished", zap.String("id", res.ID), zap.Int("cleaned", res.Cleaned))
			if asJSON {
				return writeJSON(out, res)
			}
			return printReport(out, res.Markdown())
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "Step budget (default from config)")
	cmd.Flags().StringVar(&terrain, "terrain", "", "Obstacle layout: scatter or noise")
	cmd.Flags().DurationVar(&watch, "watch", 0, "Print every step, pausing this long between them")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

// newPacmanCmd plays the pursuit game.
func newPacmanCmd() *cobra.Command {
	var (
		auto     bool
		headless bool
		ticks    int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "pacman",
		Short: "Play the pursuit game against the three ghost archetypes",
		Long: `Opens the interactive maze. Move the target with the arrow keys, or pass
--auto to let the pellet-seeking bot play. --headless skips the interface
and prints only the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mc := cfg.MazeEpisode()
			if cmd.Flags().Changed("ticks") {
				mc.MaxTicks = ticks
			}
			out := cmd.OutOrStdout()

			if headless {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				res, err := sim.RunMaze(ctx, mc, nil)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, res)
				}
				return printReport(out, res.Markdown())
			}

			ep, err := sim.NewEpisode(mc, nil)
			if err != nil {
				return err
			}
			logger.Debug("starting play", zap.String("episode", ep.ID), zap.Bool("auto", auto))
			p := tea.NewProgram(ui.NewPlay(ep, auto, cfg.GetTickDelay()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("play: %w", err)
			}
			if pm, ok := final.(ui.PlayModel); ok {
				return printReport(out, pm.Result().Markdown())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&auto, "auto", false, "Let the bot drive the target")
	cmd.Flags().BoolVar(&headless, "headless", false, "Run without the interface (implies the bot)")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "Tick limit (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the headless result as JSON")
	return cmd
}
