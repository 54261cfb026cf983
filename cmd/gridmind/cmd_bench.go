package main

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gridmind/internal/sim"
)

// newBenchCmd runs many headless episodes.
func newBenchCmd() *cobra.Command {
	var (
		episodes int
		parallel int
		ticks    int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run headless pursuit episodes over consecutive seeds",
		Long: `Runs --episodes games with seeds seed, seed+1, ... using up to --parallel
workers and prints a summary. Results depend only on the seeds.

Example:
  gridmind bench --episodes 50 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mc := cfg.MazeEpisode()
			if cmd.Flags().Changed("ticks") {
				mc.MaxTicks = ticks
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, err := sim.Bench(ctx, mc, episodes, parallel)
			if err != nil {
				return err
			}
			summary := sim.Summarize(results)
			logger.Debug("bench finished",
				zap.Int("episodes", summary.Episodes),
				zap.Int("victories", summary.Victories),
				zap.Float64("mean_score", summary.MeanScore))

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, struct {
					Summary  sim.Summary  `json:"summary"`
					Episodes []sim.Result `json:"episodes"`
				}{summary, results})
			}
			return printReport(out, sim.BenchMarkdown(results))
		},
	}
	cmd.Flags().IntVarP(&episodes, "episodes", "n", 20, "Number of episodes")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", runtime.NumCPU(), "Episodes run at once")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "Tick limit per episode (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
