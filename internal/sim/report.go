package sim

import (
	"fmt"
	"strings"
)

// Markdown renders an episode result as a short report.
func (r Result) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Maze episode `%s`\n\n", shortID(r.ID))
	b.WriteString("| Seed | Outcome | Ticks | Score | Lives | Captures | Pellets left |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %s | %d | %d | %d | %d | %d |\n",
		r.Seed, r.Outcome, r.Ticks, r.Score, r.Lives, r.Captures, r.PelletsLeft)
	return b.String()
}

// Markdown renders the vacuum performance measures.
func (r VacuumResult) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Vacuum episode `%s`\n\n", shortID(r.ID))
	fmt.Fprintf(&b, "Grid %dx%d, %d obstacles, %d dirty tiles, seed %d.\n\n", r.W, r.H, r.Obstacles, r.InitialDirt, r.Seed)
	b.WriteString("| Steps | Cleaned | Remaining | Battery | Bumps |\n")
	b.WriteString("|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d / %d | %d |\n",
		r.Steps, r.Cleaned, r.Remaining, r.Battery, r.MaxBattery, r.Bumps)
	return b.String()
}

// BenchMarkdown renders a bench run: the summary then one row per episode.
func BenchMarkdown(results []Result) string {
	s := Summarize(results)
	var b strings.Builder
	b.WriteString("# Bench\n\n")
	fmt.Fprintf(&b, "- Episodes: %d\n- Victories: %d\n- Game overs: %d\n- Timeouts: %d\n", s.Episodes, s.Victories, s.GameOvers, s.Timeouts)
	fmt.Fprintf(&b, "- Captures: %d\n- Mean score: %.1f\n- Mean ticks: %.1f\n\n", s.Captures, s.MeanScore, s.MeanTicks)
	b.WriteString("| Seed | Outcome | Ticks | Score | Captures |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, r := range results {
		fmt.Fprintf(&b, "| %d | %s | %d | %d | %d |\n", r.Seed, r.Outcome, r.Ticks, r.Score, r.Captures)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
