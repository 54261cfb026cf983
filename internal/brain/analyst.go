package brain

import (
	"math/rand"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logging"
	"gridmind/internal/logic"
	"gridmind/internal/perception"
	"gridmind/internal/topology"
)

// Analyst ambushes. It turns vanished pellets into clues, waits at the
// junction nearest a clue, and otherwise patrols junctions it has not seen
// recently, camping briefly at each one it reaches.
type Analyst struct {
	rng *rand.Rand
	p   AnalystParams
}

// NewAnalyst returns an analyst with the given tuning.
func NewAnalyst(rng *rand.Rand, p AnalystParams) *Analyst {
	return &Analyst{rng: rng, p: p}
}

func (a *Analyst) Archetype() Archetype { return ArchetypeAnalyst }

func (a *Analyst) KBOptions() []kb.Option {
	return []kb.Option{
		kb.WithTTL(logic.KindClue, a.p.ClueTTL),
		kb.WithTTL(logic.KindLoiter, a.p.LoiterTicks),
	}
}

func (a *Analyst) Tell(k *kb.KB, s perception.Snapshot) {
	perception.Tell(k, s, perception.Options{MaxClues: a.p.MaxClues})
	if _, visible := k.Locate(logic.KindTargetSeen); visible {
		if k.Retract(logic.Loiter(logic.Var("X"), logic.Var("Y"), logic.Var("T"))) > 0 {
			logging.BrainDebug("[%s] target in sight, loiter abandoned", k.Owner())
		}
	}
}

// mesh is the optimistic traversal set: every safe tile, every frontier
// tile and the agent's own tile.
func mesh(k *kb.KB, self grid.Coord) grid.Set {
	m := k.Tiles(logic.KindSafe)
	for c := range topology.Frontier(k) {
		m.Add(c)
	}
	m.Add(self)
	return m
}

func (a *Analyst) Ask(k *kb.KB) grid.Action {
	self, ok := k.Position()
	if !ok {
		return grid.Wait
	}
	m := mesh(k, self)

	if goal, ok := k.Goal(); ok && isWall(k, goal) {
		k.ClearPlan()
	}

	if act, ok := a.loiter(k, self, m); ok {
		return act
	}

	_, visible := k.Locate(logic.KindTargetSeen)
	if goal, ok := k.Goal(); ok && goal == self && !visible && k.IsAt(logic.KindJunction, self) {
		a.rememberJunction(k, self)
		k.Assert(logic.Loiter(logic.Int(self.X), logic.Int(self.Y), logic.Int(k.Clock())))
		k.ClearPlan()
		logging.BrainDebug("[%s] reached junction %s, loitering", k.Owner(), self)
		return grid.Wait
	}

	if goal, ok := a.selectGoal(k, self, m); ok {
		k.SetGoal(goal)
		if act, ok := travel(k, self, m.Has); ok {
			return act
		}
		k.ClearPlan()
	}
	return randomMove(k, a.rng, self, m.Has)
}

// loiter keeps the agent within one step of its anchor while the loiter fact
// lives: off the anchor it steps back, on it it steps to a random neighbour.
func (a *Analyst) loiter(k *kb.KB, self grid.Coord, m grid.Set) (grid.Action, bool) {
	anchor, ok := k.Locate(logic.KindLoiter)
	if !ok {
		return grid.Wait, false
	}
	if _, visible := k.Locate(logic.KindTargetSeen); visible {
		return grid.Wait, false
	}
	if self != anchor {
		if act, ok := grid.Toward(self, anchor); ok {
			return act, true
		}
		return greedyStep(k, a.rng, self, anchor), true
	}
	return randomMove(k, a.rng, self, m.Has), true
}

// rememberJunction stamps a junction as visited and evicts the oldest
// entries beyond the memory size.
func (a *Analyst) rememberJunction(k *kb.KB, c grid.Coord) {
	k.Assert(logic.JunctionVisited(logic.Int(c.X), logic.Int(c.Y), logic.Int(k.Clock())))
	for k.Count(logic.KindJunctionVisited) > a.p.JunctionMemory {
		var (
			oldest logic.Predicate
			stamp  int
			found  bool
		)
		for _, f := range k.Facts(logic.KindJunctionVisited) {
			if t, _ := f.Stamp(); !found || t < stamp {
				oldest, stamp, found = f, t, true
			}
		}
		k.Retract(oldest)
	}
}

// selectGoal runs the cascade: visible target, clue ambush, then the sticky
// patrol tiers (far unvisited junction, nearest frontier, any junction).
func (a *Analyst) selectGoal(k *kb.KB, self grid.Coord, m grid.Set) (grid.Coord, bool) {
	if target, ok := k.Locate(logic.KindTargetSeen); ok {
		return target, true
	}
	if goal, ok := a.ambush(k, self); ok {
		return goal, true
	}

	frontier := topology.Frontier(k)
	if goal, ok := k.Goal(); ok && goal != self && !isWall(k, goal) &&
		(k.IsAt(logic.KindJunction, goal) || frontier.Has(goal)) {
		return goal, true
	}

	visited := k.Tiles(logic.KindJunctionVisited)
	farJunction := func(c grid.Coord) bool {
		return k.IsAt(logic.KindJunction, c) && !visited.Has(c) && self.Manhattan(c) > a.p.FarJunction
	}
	if goal, ok := grid.Nearest(self, farJunction, m.Has); ok {
		logging.BrainDebug("[%s] patrol to junction %s", k.Owner(), goal)
		return goal, true
	}
	if goal, ok := grid.Nearest(self, frontier.Has, m.Has); ok {
		return goal, true
	}
	anyJunction := func(c grid.Coord) bool {
		return c != self && k.IsAt(logic.KindJunction, c)
	}
	return grid.Nearest(self, anyJunction, m.Has)
}

// ambush picks the most promising clue, scored by distance plus weighted
// age, and returns the junction nearest to it within the ambush radius, or
// the clue tile itself.
func (a *Analyst) ambush(k *kb.KB, self grid.Coord) (grid.Coord, bool) {
	var (
		best      grid.Coord
		bestScore int
		found     bool
	)
	now := k.Clock()
	for _, f := range k.Facts(logic.KindClue) {
		x, y, _ := f.XY()
		t, _ := f.Stamp()
		c := grid.C(x, y)
		score := self.Manhattan(c) + a.p.ClueAgeWeight*(now-t)
		if !found || score < bestScore {
			best, bestScore, found = c, score, true
		}
	}
	if !found {
		return grid.Coord{}, false
	}

	var (
		junction grid.Coord
		jd       int
		hasJ     bool
	)
	for _, j := range k.Tiles(logic.KindJunction).Sorted() {
		d := j.Manhattan(best)
		if d > a.p.AmbushRadius {
			continue
		}
		if !hasJ || d < jd {
			junction, jd, hasJ = j, d, true
		}
	}
	if hasJ {
		logging.BrainDebug("[%s] ambush at %s for clue %s", k.Owner(), junction, best)
		return junction, true
	}
	return best, true
}
