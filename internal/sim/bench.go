package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gridmind/internal/logging"
)

// Bench plays episodes maze games with seeds cfg.Seed, cfg.Seed+1, ... and
// at most parallel of them at once. Episodes share nothing, so results only
// depend on their seeds. Results are returned in seed order.
func Bench(ctx context.Context, cfg MazeConfig, episodes, parallel int) ([]Result, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("bench: episodes must be positive, got %d", episodes)
	}
	if parallel <= 0 {
		parallel = 1
	}

	results := make([]Result, episodes)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i := 0; i < episodes; i++ {
		c := cfg
		c.Seed = cfg.Seed + int64(i)
		eg.Go(func() error {
			r, err := RunMaze(egCtx, c, nil)
			if err != nil {
				return fmt.Errorf("episode seed %d: %w", c.Seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	logging.Sim("bench finished %d episodes", episodes)
	return results, nil
}

// Summary aggregates bench results.
type Summary struct {
	Episodes  int     `json:"episodes"`
	Victories int     `json:"victories"`
	GameOvers int     `json:"game_overs"`
	Timeouts  int     `json:"timeouts"`
	Captures  int     `json:"captures"`
	MeanScore float64 `json:"mean_score"`
	MeanTicks float64 `json:"mean_ticks"`
}

// Summarize folds results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Episodes: len(results)}
	if len(results) == 0 {
		return s
	}
	score, ticks := 0, 0
	for _, r := range results {
		switch r.Outcome {
		case OutcomeVictory:
			s.Victories++
		case OutcomeGameOver:
			s.GameOvers++
		case OutcomeTimeout:
			s.Timeouts++
		}
		s.Captures += r.Captures
		score += r.Score
		ticks += r.Ticks
	}
	s.MeanScore = float64(score) / float64(len(results))
	s.MeanTicks = float64(ticks) / float64(len(results))
	return s
}
