package config

import (
	"gridmind/internal/brain"
	"gridmind/internal/grid"
	"gridmind/internal/sim"
	"gridmind/internal/world"
)

// Params maps the tuning sections onto brain parameters. Board bounds come
// from the configured layout when it resolves.
func (c *Config) Params() brain.Params {
	p := brain.DefaultParams()
	a, co := c.Analyst, c.Coordinator
	p.Analyst = brain.AnalystParams{
		ClueTTL:        a.ClueTTL,
		MaxClues:       a.MaxClues,
		ClueAgeWeight:  a.ClueAgeWeight,
		AmbushRadius:   a.AmbushRadius,
		JunctionMemory: a.JunctionMemory,
		FarJunction:    a.FarJunction,
		LoiterTicks:    a.LoiterTicks,
	}
	p.Coordinator.ClueTTL = co.ClueTTL
	p.Coordinator.MaxClues = co.MaxClues
	p.Coordinator.EscapeTicks = co.EscapeTicks
	p.Coordinator.UnreachableTicks = co.UnreachableTicks
	p.Coordinator.FleeRadius = co.FleeRadius
	p.Coordinator.ChaseDistance = co.ChaseDistance
	p.Coordinator.InterceptDistance = co.InterceptDistance
	p.Coordinator.Lookahead = co.Lookahead
	p.Coordinator.SpreadDistance = co.SpreadDistance
	p.Coordinator.MaxRetries = co.MaxRetries
	if l, err := world.NamedLayout(c.Maze.Layout); err == nil {
		p.Coordinator.BoardW, p.Coordinator.BoardH = l.W, l.H
	}
	return p
}

// MazeEpisode builds the episode settings. Unparseable archetypes fall back
// to the pursuer; Validate reports them.
func (c *Config) MazeEpisode() sim.MazeConfig {
	ghosts := make(map[string]brain.Archetype, len(c.Ghosts))
	for id, name := range c.Ghosts {
		arch, err := brain.ParseArchetype(name)
		if err != nil {
			arch = brain.ArchetypePursuer
		}
		ghosts[id] = arch
	}
	return sim.MazeConfig{
		Seed:   c.Seed,
		Layout: c.Maze.Layout,
		Maze: world.MazeOptions{
			PelletDensity: c.Maze.PelletDensity,
			SightRadius:   c.Maze.SightRadius,
			Lives:         c.Maze.Lives,
		},
		MaxTicks: c.Maze.MaxTicks,
		Params:   c.Params(),
		Ghosts:   ghosts,
	}
}

// VacuumEpisode builds the cleaning episode settings.
func (c *Config) VacuumEpisode() sim.VacuumConfig {
	v := c.Vacuum
	return sim.VacuumConfig{
		Seed: c.Seed,
		Gen: world.VacuumGen{
			W:               v.Width,
			H:               v.Height,
			ObstacleDensity: v.ObstacleDensity,
			DirtDensity:     v.DirtDensity,
			Dock:            grid.C(v.DockX, v.DockY),
			Terrain:         v.Terrain,
		},
		Battery: v.Battery,
		Steps:   v.Steps,
	}
}
