package world

import (
	"math/rand"

	"gridmind/internal/grid"
)

// Bot drives the target when no human does. It walks the true map to the
// nearest pellet, treating ghosts and the tiles next to them as blocked,
// and flees when no safe route exists.
type Bot struct {
	rng *rand.Rand
	// Caution is how close, in steps, the bot lets a ghost come.
	Caution int
}

// NewBot returns a pellet-seeking bot.
func NewBot(rng *rand.Rand) *Bot {
	return &Bot{rng: rng, Caution: 1}
}

// Act picks the target's next move in m.
func (b *Bot) Act(m *Maze) grid.Action {
	self := m.Target()

	var ghosts []grid.Coord
	danger := grid.NewSet()
	for _, id := range m.GhostIDs() {
		g, _ := m.Ghost(id)
		ghosts = append(ghosts, g)
		for y := -b.Caution; y <= b.Caution; y++ {
			for x := -b.Caution; x <= b.Caution; x++ {
				if c := g.Add(grid.C(x, y)); g.Manhattan(c) <= b.Caution {
					danger.Add(c)
				}
			}
		}
	}

	open := func(c grid.Coord) bool { return !m.TargetBlocked(c) && !danger.Has(c) }
	food := func(c grid.Coord) bool { return m.HasPellet(c) && open(c) }
	if goal, ok := grid.Nearest(self, food, open); ok && goal != self {
		if path, ok := grid.FindPath(self, goal, open); ok {
			if a, ok := grid.Toward(self, path[1]); ok {
				return a
			}
		}
	}
	return b.flee(m, self, ghosts)
}

// flee steps to the open neighbour farthest from the closest ghost, waiting
// when staying put is at least as safe.
func (b *Bot) flee(m *Maze, self grid.Coord, ghosts []grid.Coord) grid.Action {
	best, bestD := grid.Wait, closest(self, ghosts)
	var ties []grid.Action
	for _, a := range grid.Cardinals() {
		next := self.Add(a.Delta())
		if m.TargetBlocked(next) {
			continue
		}
		switch d := closest(next, ghosts); {
		case d > bestD:
			best, bestD = a, d
			ties = []grid.Action{a}
		case d == bestD && best != grid.Wait:
			ties = append(ties, a)
		}
	}
	if len(ties) > 1 {
		return ties[b.rng.Intn(len(ties))]
	}
	return best
}

func closest(c grid.Coord, others []grid.Coord) int {
	best := -1
	for _, o := range others {
		if d := c.Manhattan(o); best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 1 << 30
	}
	return best
}
