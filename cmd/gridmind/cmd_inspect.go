package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gridmind/internal/brain"
	"gridmind/internal/mirror"
	"gridmind/internal/sim"
)

// newInspectCmd plays a headless episode and queries one ghost's beliefs.
func newInspectCmd() *cobra.Command {
	var (
		ticks int
		ghost string
		facts bool
	)
	cmd := &cobra.Command{
		Use:   "inspect [query...]",
		Short: "Inspect a ghost's beliefs through the Mangle engine",
		Long: `Plays --ticks ticks of a headless episode, loads the chosen ghost's
knowledge base into Mangle and evaluates the belief program. Each argument is
a query atom.

Examples:
  gridmind inspect --ghost B "junction(X, Y)"
  gridmind inspect --ticks 120 "open_neighbour(5, 1, X, Y)" "threat(ID, X, Y)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := sim.NewEpisode(cfg.MazeEpisode(), nil)
			if err != nil {
				return err
			}
			for i := 0; i < ticks && !ep.Done(); i++ {
				ep.Step()
			}

			var agent *brain.Shell
			ids := make([]string, 0, len(ep.Agents))
			for _, ag := range ep.Agents {
				ids = append(ids, ag.ID)
				if ag.ID == ghost {
					agent = ag
				}
			}
			if agent == nil {
				return fmt.Errorf("no ghost %q (have %s)", ghost, strings.Join(ids, ", "))
			}

			eng, err := mirror.New()
			if err != nil {
				return err
			}
			if err := eng.Load(agent.KB); err != nil {
				return err
			}
			logger.Debug("beliefs loaded", zap.String("ghost", ghost), zap.Int("facts", agent.KB.Len()))

			md, err := inspectMarkdown(ep, agent, eng, args, facts)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), md)
		},
	}
	cmd.Flags().IntVarP(&ticks, "ticks", "t", 60, "Ticks to play before inspecting")
	cmd.Flags().StringVarP(&ghost, "ghost", "g", "A", "Ghost ID to inspect")
	cmd.Flags().BoolVar(&facts, "facts", false, "List every stored fact")
	return cmd
}

func inspectMarkdown(ep *sim.Episode, agent *brain.Shell, eng *mirror.Engine, queries []string, listFacts bool) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Ghost %s (%s) at tick %d\n\n", agent.ID, agent.Brain.Archetype(), ep.Maze.Tick())
	if agent.Brain.Archetype() == brain.ArchetypePursuer {
		fmt.Fprintf(&b, "Mode: **%s**\n\n", brain.Mode(agent.KB))
	}

	b.WriteString("| Predicate | Facts |\n|---|---|\n")
	for _, name := range eng.Predicates() {
		if n := eng.Count(name); n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", name, n)
		}
	}

	for _, q := range queries {
		rows, err := eng.Query(q)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n## `%s`\n\n", q)
		if len(rows) == 0 {
			b.WriteString("No results.\n")
			continue
		}
		for _, row := range rows {
			fmt.Fprintf(&b, "- %s\n", formatBinding(row))
		}
	}

	if listFacts {
		b.WriteString("\n## Facts\n\n```\n")
		for _, f := range agent.KB.All() {
			b.WriteString(f.String())
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}
	return b.String(), nil
}

func formatBinding(row mirror.Binding) string {
	if len(row) == 0 {
		return "yes"
	}
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + row[name].String()
	}
	return strings.Join(parts, ", ")
}
