package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logic"
	"gridmind/internal/perception"
)

func newCoordinator(picks ...int) (*Coordinator, *kb.KB) {
	c := NewCoordinator(scriptedRand(picks...), DefaultCoordinatorParams())
	return c, kb.New("C", c.KBOptions()...)
}

// corridor is a walled horizontal corridor y=1, x in [0, n).
func corridor(n int) grid.View {
	v := cells{grid.C(-1, 1): grid.LabelWall, grid.C(n, 1): grid.LabelWall}
	for x := -1; x <= n; x++ {
		v[grid.C(x, 0)] = grid.LabelWall
		v[grid.C(x, 2)] = grid.LabelWall
	}
	for x := 0; x < n; x++ {
		v[grid.C(x, 1)] = grid.LabelEmpty
	}
	return grid.NewView(v)
}

func TestCoordinator_OscillationStartsEscape(t *testing.T) {
	c, k := newCoordinator(0)
	a, b := grid.C(1, 1), grid.C(2, 1)
	view := corridor(6)

	for tick, pos := range []grid.Coord{a, b, a, b, a} {
		c.Tell(k, perception.Snapshot{Tick: tick, Self: pos, View: view})
	}
	require.True(t, Oscillating(k, a, 4))

	assert.Equal(t, grid.Right, c.Ask(k))
	assert.True(t, k.Holds(logic.Escape(logic.Int(5), logic.Int(1), logic.Int(4))))
	goal, ok := k.Goal()
	require.True(t, ok)
	assert.Equal(t, grid.C(5, 1), goal, "farthest known-safe tile")

	// The commitment holds on the next tick.
	c.Tell(k, perception.Snapshot{Tick: 5, Self: b, View: view})
	assert.Equal(t, grid.Right, c.Ask(k))
	assert.True(t, k.Exists(logic.Escape(logic.Var("X"), logic.Var("Y"), logic.Var("T"))))
}

func TestCoordinator_StationaryIsNotOscillating(t *testing.T) {
	_, k := newCoordinator(0)
	self := grid.C(1, 1)
	for tick := 0; tick <= 4; tick++ {
		k.Assert(logic.VisitedAt(logic.Int(self.X), logic.Int(self.Y), logic.Int(tick)))
	}
	assert.False(t, Oscillating(k, self, 4))
}

func TestCoordinator_EscapeRetractedOnArrival(t *testing.T) {
	c, k := newCoordinator(0)
	self := grid.C(3, 0)
	k.AssertAt(logic.KindPosition, self)
	k.Assert(logic.Escape(logic.Int(3), logic.Int(0), logic.Int(0)))

	_, _, ok := c.SelectGoal(k, self, grid.NewSet(self), grid.NewSet())
	assert.False(t, ok)
	assert.False(t, k.Exists(logic.Escape(logic.Var("X"), logic.Var("Y"), logic.Var("T"))))
}

func TestCoordinator_RepulsionStepsAway(t *testing.T) {
	c, k := newCoordinator(0)
	self := grid.C(2, 2)
	k.AssertAt(logic.KindPosition, self)
	assertSafe(k, self, grid.C(1, 2), grid.C(3, 2), grid.C(2, 1), grid.C(2, 3))
	k.Assert(logic.AgentPos(logic.Sym("A"), logic.Int(3), logic.Int(2)))

	goal, rule, ok := c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet())
	require.True(t, ok)
	assert.Equal(t, RuleRepulse, rule)
	assert.Equal(t, grid.C(1, 2), goal)
}

func TestCoordinator_ChasesInCloseBand(t *testing.T) {
	c, k := newCoordinator(0)
	self := grid.C(0, 0)
	k.AssertAt(logic.KindPosition, self)
	assertSafe(k, rect(3, 1)...)
	k.AssertAt(logic.KindTargetSeen, grid.C(2, 0))

	goal, rule, ok := c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet())
	require.True(t, ok)
	assert.Equal(t, RuleChase, rule)
	assert.Equal(t, grid.C(2, 0), goal)
	assert.Equal(t, grid.Right, c.Ask(k))
}

func TestCoordinator_InterceptAtProjectedJunction(t *testing.T) {
	c, k := newCoordinator(0)
	self := grid.C(0, 0)
	k.AssertAt(logic.KindPosition, self)
	assertSafe(k, rect(5, 3)...)
	k.AssertAt(logic.KindTargetLast, grid.C(4, 0))
	k.Assert(logic.TargetVector(logic.Int(0), logic.Int(1)))
	k.AssertAt(logic.KindJunction, grid.C(4, 2))

	goal, rule, ok := c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet())
	require.True(t, ok)
	assert.Equal(t, RuleIntercept, rule)
	assert.Equal(t, grid.C(4, 2), goal)

	// A wall on the projection abandons the intercept; exploration then
	// prefers frontier ahead of the target's motion.
	k.AssertAt(logic.KindWall, grid.C(4, 1))
	safe := k.Tiles(logic.KindSafe)
	safe.Add(self)
	goal, rule, ok = c.SelectGoal(k, self, safe, grid.NewSet())
	require.True(t, ok)
	assert.Equal(t, RuleExplore, rule)
	assert.Equal(t, grid.C(-1, 1), goal)
}

func TestCoordinator_FollowsNewestClue(t *testing.T) {
	c, k := newCoordinator(0)
	self := grid.C(1, 1)
	view := corridor(12)
	withPellet := cells{}
	for _, p := range view.Coords() {
		l, _ := view.At(p)
		withPellet[p] = l
	}
	withPellet[grid.C(9, 1)] = grid.LabelPellet

	c.Tell(k, perception.Snapshot{Tick: 0, Self: self, View: grid.NewView(withPellet)})
	c.Tell(k, perception.Snapshot{Tick: 1, Self: self, View: view})
	require.True(t, k.Holds(logic.Clue(logic.Int(9), logic.Int(1), logic.Int(1))))

	goal, rule, ok := c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet())
	require.True(t, ok)
	assert.Equal(t, RuleClue, rule)
	assert.Equal(t, grid.C(9, 1), goal)
	assert.Equal(t, grid.Right, c.Ask(k))

	// A newer clue wins; one beyond the intercept band is ignored.
	k.Assert(logic.Clue(logic.Int(5), logic.Int(1), logic.Int(2)))
	goal, _, _ = c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet())
	assert.Equal(t, grid.C(5, 1), goal)

	k.Retract(logic.Clue(logic.Var("X"), logic.Var("Y"), logic.Var("T")))
	k.Assert(logic.Clue(logic.Int(11), logic.Int(20), logic.Int(2)))
	_, rule, _ = c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet())
	assert.NotEqual(t, RuleClue, rule)
}

func TestCoordinator_UnreachableGoalIsMarkedAndSkipped(t *testing.T) {
	c, k := newCoordinator(0)
	self := grid.C(0, 0)
	k.SetClock(0)
	k.AssertAt(logic.KindPosition, self)
	assertSafe(k, self, grid.C(1, 0))
	k.AssertAt(logic.KindTargetSeen, grid.C(3, 0))

	assert.Equal(t, grid.Left, c.Ask(k), "falls through to the nearest frontier")
	assert.True(t, k.Tiles(logic.KindUnreachable).Has(grid.C(3, 0)))

	ttl, ok := k.TTL(logic.KindUnreachable)
	require.True(t, ok)
	assert.Equal(t, 15, ttl)
}

func TestCoordinator_SpreadPrefersPelletsThenDistance(t *testing.T) {
	c, k := newCoordinator(0)
	self := grid.C(0, 0)
	k.AssertAt(logic.KindPosition, self)
	for x := -1; x <= 10; x++ {
		k.AssertAt(logic.KindWall, grid.C(x, -1))
		k.AssertAt(logic.KindWall, grid.C(x, 1))
	}
	k.AssertAt(logic.KindWall, grid.C(-1, 0))
	k.AssertAt(logic.KindWall, grid.C(10, 0))
	for x := 0; x < 10; x++ {
		assertSafe(k, grid.C(x, 0))
	}

	goal, rule, ok := c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet())
	require.True(t, ok)
	assert.Equal(t, RuleSpread, rule)
	assert.Equal(t, grid.C(9, 0), goal)

	k.AssertAt(logic.KindPelletSeen, grid.C(7, 0))
	goal, _, _ = c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet())
	assert.Equal(t, grid.C(7, 0), goal)

	goal, _, _ = c.SelectGoal(k, self, k.Tiles(logic.KindSafe), grid.NewSet(grid.C(7, 0)))
	assert.Equal(t, grid.C(9, 0), goal, "excluded goals are skipped")
}
