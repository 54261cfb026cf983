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

// Rule names the cascade tier that produced a coordinator goal.
type Rule string

const (
	RuleEscape    Rule = "escape"
	RuleRepulse   Rule = "repulse"
	RuleChase     Rule = "chase"
	RuleIntercept Rule = "intercept"
	RuleClue      Rule = "clue"
	RuleExplore   Rule = "explore"
	RuleSpread    Rule = "spread"
)

// Coordinator runs the formal cascade. It plans on known-safe tiles only and
// marks goals it cannot reach so they are skipped until the mark ages out.
type Coordinator struct {
	rng     *rand.Rand
	p       CoordinatorParams
	regions perception.Quadrants
}

// NewCoordinator returns a coordinator with the given tuning.
func NewCoordinator(rng *rand.Rand, p CoordinatorParams) *Coordinator {
	return &Coordinator{
		rng:     rng,
		p:       p,
		regions: perception.Quadrants{W: p.BoardW, H: p.BoardH},
	}
}

func (c *Coordinator) Archetype() Archetype { return ArchetypeCoordinator }

func (c *Coordinator) KBOptions() []kb.Option {
	return []kb.Option{
		kb.WithTTL(logic.KindClue, c.p.ClueTTL),
		kb.WithTTL(logic.KindEscape, c.p.EscapeTicks),
		kb.WithTTL(logic.KindUnreachable, c.p.UnreachableTicks),
	}
}

func (c *Coordinator) Tell(k *kb.KB, s perception.Snapshot) {
	perception.Tell(k, s, perception.Options{MaxClues: c.p.MaxClues, Regions: &c.regions})
}

func (c *Coordinator) Ask(k *kb.KB) grid.Action {
	self, ok := k.Position()
	if !ok {
		return grid.Wait
	}
	safe := k.Tiles(logic.KindSafe)
	safe.Add(self)
	excluded := k.Tiles(logic.KindUnreachable)

	for attempt := 0; attempt <= c.p.MaxRetries; attempt++ {
		goal, rule, ok := c.SelectGoal(k, self, safe, excluded)
		if !ok {
			break
		}
		k.SetGoal(goal)
		if act, ok := travel(k, self, safe.Has); ok {
			logging.BrainDebug("[%s] %s -> %s", k.Owner(), rule, goal)
			return act
		}
		k.Assert(logic.Unreachable(logic.Int(goal.X), logic.Int(goal.Y), logic.Int(k.Clock())))
		excluded.Add(goal)
		k.ClearPlan()
		if rule == RuleEscape {
			k.Retract(logic.Escape(logic.Var("X"), logic.Var("Y"), logic.Var("T")))
		}
		logging.BrainDebug("[%s] %s goal %s unreachable", k.Owner(), rule, goal)
	}

	k.ClearPlan()
	return randomMove(k, c.rng, self, nil)
}

// SelectGoal evaluates the cascade once. Goals in excluded and the agent's
// own tile are never returned.
func (c *Coordinator) SelectGoal(k *kb.KB, self grid.Coord, safe, excluded grid.Set) (grid.Coord, Rule, bool) {
	usable := func(g grid.Coord) bool { return g != self && !excluded.Has(g) }

	if g, ok := c.escape(k, self, safe, usable); ok {
		return g, RuleEscape, true
	}
	if g, ok := c.repulse(k, self, safe, usable); ok {
		return g, RuleRepulse, true
	}

	target, visible := k.Locate(logic.KindTargetSeen)
	if visible && self.Manhattan(target) <= c.p.ChaseDistance && usable(target) {
		return target, RuleChase, true
	}
	if g, ok := c.intercept(k, self, usable); ok {
		return g, RuleIntercept, true
	}
	if visible && self.Manhattan(target) <= c.p.InterceptDistance && usable(target) {
		return target, RuleChase, true
	}
	if !visible {
		if g, ok := newestClue(k); ok && self.Manhattan(g) <= c.p.InterceptDistance && usable(g) {
			return g, RuleClue, true
		}
	}
	if g, ok := c.explore(k, self, safe, usable); ok {
		return g, RuleExplore, true
	}
	if g, ok := c.spread(k, self, safe, usable); ok {
		return g, RuleSpread, true
	}
	return grid.Coord{}, "", false
}

// newestClue is the most recently eaten pellet the agent knows of, the best
// guess at the target's position while it is out of sight. Ties go to the
// lowest coordinate.
func newestClue(k *kb.KB) (grid.Coord, bool) {
	var (
		best  grid.Coord
		stamp int
		found bool
	)
	for _, f := range k.Facts(logic.KindClue) {
		x, y, _ := f.XY()
		t, _ := f.Stamp()
		if !found || t > stamp {
			best, stamp, found = grid.C(x, y), t, true
		}
	}
	return best, found
}

// escape keeps an active commitment until it is reached, or starts one when
// the position history shows a two-cycle.
func (c *Coordinator) escape(k *kb.KB, self grid.Coord, safe grid.Set, usable func(grid.Coord) bool) (grid.Coord, bool) {
	if g, ok := k.Locate(logic.KindEscape); ok {
		if usable(g) {
			return g, true
		}
		k.Retract(logic.Escape(logic.Var("X"), logic.Var("Y"), logic.Var("T")))
		return grid.Coord{}, false
	}

	t := k.Clock()
	if !Oscillating(k, self, t) {
		return grid.Coord{}, false
	}

	var (
		best  grid.Coord
		bestD int
		found bool
	)
	for g, d := range grid.Distances(self, safe.Has) {
		if !usable(g) {
			continue
		}
		if !found || d > bestD || (d == bestD && g.Less(best)) {
			best, bestD, found = g, d, true
		}
	}
	if !found {
		return grid.Coord{}, false
	}
	k.Assert(logic.Escape(logic.Int(best.X), logic.Int(best.Y), logic.Int(t)))
	logging.BrainDebug("[%s] oscillating at %s, escaping to %s", k.Owner(), self, best)
	return best, true
}

// Oscillating reports a two-cycle: the agent stood on self two and four
// ticks ago but not one tick ago. An agent standing still on self is not
// oscillating and never starts an escape this way.
func Oscillating(k *kb.KB, self grid.Coord, t int) bool {
	at := func(tick int) bool {
		return k.Holds(logic.VisitedAt(logic.Int(self.X), logic.Int(self.Y), logic.Int(tick)))
	}
	return t >= 4 && at(t-2) && at(t-4) && !at(t-1)
}

// repulse steps away from other agents closer than the flee radius. Each
// safe neighbour scores by how well it aligns with the summed away vector
// plus its distance from the nearest threat.
func (c *Coordinator) repulse(k *kb.KB, self grid.Coord, safe grid.Set, usable func(grid.Coord) bool) (grid.Coord, bool) {
	var (
		threats []grid.Coord
		away    grid.Coord
	)
	for _, f := range k.Facts(logic.KindAgentPos) {
		pos := grid.C(f.Arg(1).IntValue(), f.Arg(2).IntValue())
		if self.Manhattan(pos) < c.p.FleeRadius {
			threats = append(threats, pos)
			away = away.Add(self.Sub(pos))
		}
	}
	if len(threats) == 0 {
		return grid.Coord{}, false
	}

	var (
		best      grid.Coord
		bestScore int
		found     bool
	)
	for _, n := range self.Neighbors() {
		if !safe.Has(n) || !usable(n) {
			continue
		}
		step := n.Sub(self)
		score := step.X*away.X + step.Y*away.Y + nearestDistance(n, threats)
		if !found || score > bestScore || (score == bestScore && n.Less(best)) {
			best, bestScore, found = n, score, true
		}
	}
	return best, found
}

func nearestDistance(c grid.Coord, others []grid.Coord) int {
	best := -1
	for _, o := range others {
		if d := c.Manhattan(o); best < 0 || d < best {
			best = d
		}
	}
	return best
}

// intercept projects the target's motion from its last sighting and aims
// for the first junction on the projection. A wall on the way abandons it.
func (c *Coordinator) intercept(k *kb.KB, self grid.Coord, usable func(grid.Coord) bool) (grid.Coord, bool) {
	last, ok := k.Locate(logic.KindTargetLast)
	if !ok || self.Manhattan(last) > c.p.InterceptDistance {
		return grid.Coord{}, false
	}
	v, ok := targetVector(k)
	if !ok {
		return grid.Coord{}, false
	}
	dir, ok := vectorAction(v)
	if !ok {
		return grid.Coord{}, false
	}

	p := last
	for i := 0; i < c.p.Lookahead; i++ {
		p = p.Add(dir.Delta())
		if isWall(k, p) {
			return grid.Coord{}, false
		}
		if k.IsAt(logic.KindJunction, p) && usable(p) {
			return p, true
		}
	}
	return grid.Coord{}, false
}

// explore heads for the nearest frontier tile lying ahead of the target's
// last known motion, or the nearest frontier tile when none does.
func (c *Coordinator) explore(k *kb.KB, self grid.Coord, safe grid.Set, usable func(grid.Coord) bool) (grid.Coord, bool) {
	frontier := topology.Frontier(k)
	if len(frontier) == 0 {
		return grid.Coord{}, false
	}
	open := func(g grid.Coord) bool { return frontier.Has(g) && usable(g) }

	last, hasLast := k.Locate(logic.KindTargetLast)
	v, hasVec := targetVector(k)
	if hasLast && hasVec {
		aligned := func(g grid.Coord) bool {
			d := g.Sub(last)
			return open(g) && d.X*v.X+d.Y*v.Y > 0
		}
		if g, ok := grid.Nearest(self, aligned, safe.Has); ok {
			return g, true
		}
	}
	return grid.Nearest(self, open, safe.Has)
}

// spread picks a distant safe tile, preferring the region with the most
// believed pellets and tiles with a pellet sighting, then distance.
func (c *Coordinator) spread(k *kb.KB, self grid.Coord, safe grid.Set, usable func(grid.Coord) bool) (grid.Coord, bool) {
	richest, _, hasRich := perception.Richest(k, c.regions)

	type cand struct {
		c      grid.Coord
		rich   bool
		pellet bool
		d      int
	}
	better := func(a, b cand) bool {
		switch {
		case a.rich != b.rich:
			return a.rich
		case a.pellet != b.pellet:
			return a.pellet
		case a.d != b.d:
			return a.d > b.d
		}
		return a.c.Less(b.c)
	}

	var (
		best  cand
		found bool
	)
	for g, d := range grid.Distances(self, safe.Has) {
		if d < c.p.SpreadDistance || !usable(g) {
			continue
		}
		r, _ := c.regions.Of(g)
		cur := cand{c: g, rich: hasRich && r == richest, pellet: k.IsAt(logic.KindPelletSeen, g), d: d}
		if !found || better(cur, best) {
			best, found = cur, true
		}
	}
	return best.c, found
}
