package kb

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmind/internal/grid"
	"gridmind/internal/logic"
)

var (
	X = logic.Var("X")
	Y = logic.Var("Y")
)

func n(v int) logic.Term { return logic.Int(v) }

func TestKB_FunctionalPosition(t *testing.T) {
	k := New("A")
	k.Assert(logic.Position(n(1), n(1)))
	k.Assert(logic.Position(n(2), n(1)))

	subs := k.Query(logic.Position(X, Y))
	require.Len(t, subs, 1)
	assert.Equal(t, 2, subs[0].Int(X))
	assert.Equal(t, 1, subs[0].Int(Y))

	pos, ok := k.Position()
	require.True(t, ok)
	assert.Equal(t, grid.C(2, 1), pos)
}

func TestKB_FunctionalPerKey(t *testing.T) {
	k := New("C")
	k.Assert(logic.AgentPos(logic.Sym("A"), n(1), n(1)))
	k.Assert(logic.AgentPos(logic.Sym("B"), n(4), n(4)))
	k.Assert(logic.AgentPos(logic.Sym("A"), n(2), n(1)))

	assert.Equal(t, 2, k.Count(logic.KindAgentPos))
	assert.True(t, k.Holds(logic.AgentPos(logic.Sym("A"), n(2), n(1))))
	assert.False(t, k.Holds(logic.AgentPos(logic.Sym("A"), n(1), n(1))))

	// Region counts are functional on the region only.
	k.Assert(logic.RegionPellets(logic.Sym("R1"), n(4)))
	k.Assert(logic.RegionPellets(logic.Sym("R1"), n(3)))
	subs := k.Query(logic.RegionPellets(logic.Sym("R1"), X))
	require.Len(t, subs, 1)
	assert.Equal(t, 3, subs[0].Int(X))
}

func TestKB_RetractByPattern(t *testing.T) {
	k := New("A")
	k.Assert(logic.Safe(n(0), n(0)))
	k.Assert(logic.Safe(n(0), n(1)))
	k.Assert(logic.Safe(n(5), n(2)))
	k.Assert(logic.Wall(n(9), n(9)))

	removed := k.Retract(logic.Safe(X, Y))
	assert.Equal(t, 3, removed)
	assert.Empty(t, k.Query(logic.Safe(X, Y)))
	assert.Equal(t, 1, k.Len())
}

func TestKB_RetractPartialPattern(t *testing.T) {
	k := New("A")
	k.Assert(logic.Safe(n(0), n(0)))
	k.Assert(logic.Safe(n(0), n(1)))
	k.Assert(logic.Safe(n(1), n(1)))

	assert.Equal(t, 2, k.Retract(logic.Safe(n(0), Y)))
	assert.True(t, k.IsAt(logic.KindSafe, grid.C(1, 1)))
}

func TestKB_NonGroundAssertIsNoop(t *testing.T) {
	k := New("A")
	assert.NotPanics(t, func() {
		assert.False(t, k.Assert(logic.Safe(X, n(1))))
		assert.False(t, k.Assert(logic.Predicate{}))
	})
	assert.Equal(t, 0, k.Len())
}

func TestKB_WallSafeExclusive(t *testing.T) {
	k := New("A")
	c := grid.C(3, 3)

	k.AssertAt(logic.KindSafe, c)
	k.AssertAt(logic.KindJunction, c)
	k.AssertAt(logic.KindWall, c)
	assert.True(t, k.IsAt(logic.KindWall, c))
	assert.False(t, k.IsAt(logic.KindSafe, c))
	assert.False(t, k.IsAt(logic.KindJunction, c))

	k.AssertAt(logic.KindSafe, c)
	assert.True(t, k.IsAt(logic.KindSafe, c))
	assert.False(t, k.IsAt(logic.KindWall, c))
}

func TestKB_AssertReportsNovelty(t *testing.T) {
	k := New("A")
	assert.True(t, k.Assert(logic.Safe(n(1), n(1))))
	assert.False(t, k.Assert(logic.Safe(n(1), n(1))))
}

func TestKB_QueryOrderIsStable(t *testing.T) {
	k := New("B")
	for _, c := range []grid.Coord{grid.C(3, 0), grid.C(1, 2), grid.C(1, 0), grid.C(0, 5)} {
		k.AssertAt(logic.KindJunction, c)
	}
	var got []grid.Coord
	for _, s := range k.Query(logic.Junction(X, Y)) {
		got = append(got, grid.C(s.Int(X), s.Int(Y)))
	}
	want := []grid.Coord{grid.C(0, 5), grid.C(1, 0), grid.C(1, 2), grid.C(3, 0)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("query order (-want +got):\n%s", diff)
	}
}

func TestKB_CollectByAge(t *testing.T) {
	k := New("B", WithTTL(logic.KindClue, 3))
	k.SetClock(10)
	k.Assert(logic.Clue(n(1), n(1), n(8)))
	k.Assert(logic.Clue(n(2), n(2), n(10)))
	k.Assert(logic.VisitedAt(n(0), n(0), n(1)))
	k.Assert(logic.Safe(n(0), n(0)))

	dropped := k.Collect()
	assert.Equal(t, 1, dropped, "visited_at from tick 1 is older than its ttl")
	assert.Equal(t, 2, k.Count(logic.KindClue))

	k.SetClock(11)
	k.Collect()
	assert.Equal(t, []logic.Predicate{logic.Clue(n(2), n(2), n(10))}, k.Facts(logic.KindClue))
	assert.True(t, k.IsAt(logic.KindSafe, grid.C(0, 0)), "untimed facts are never collected")

	ttl, ok := k.TTL(logic.KindClue)
	require.True(t, ok)
	assert.Equal(t, 3, ttl)
}

func TestKB_KBsAreIndependent(t *testing.T) {
	a, b := New("A"), New("B")
	a.AssertAt(logic.KindWall, grid.C(1, 1))
	assert.Equal(t, 0, b.Len())
}

func TestKB_KnownTiles(t *testing.T) {
	k := New("A")
	k.AssertAt(logic.KindSafe, grid.C(0, 0))
	k.AssertAt(logic.KindWall, grid.C(1, 0))
	assert.True(t, k.Known(grid.C(1, 0)))
	assert.False(t, k.Known(grid.C(0, 1)))
	assert.Equal(t, grid.NewSet(grid.C(0, 0)), k.Tiles(logic.KindSafe))
}

func TestPlan_GoalChangeResetsPath(t *testing.T) {
	k := New("A")
	k.SetGoal(grid.C(3, 0))
	k.SetPath([]grid.Coord{grid.C(0, 0), grid.C(1, 0), grid.C(2, 0), grid.C(3, 0)})

	k.SetGoal(grid.C(3, 0))
	assert.Len(t, k.Plan().Path, 4, "same goal keeps the path")

	k.SetGoal(grid.C(0, 3))
	g, ok := k.Goal()
	require.True(t, ok)
	assert.Equal(t, grid.C(0, 3), g)
	assert.Empty(t, k.Plan().Path)

	k.ClearPlan()
	_, ok = k.Goal()
	assert.False(t, ok)
}

func TestPlan_AdvanceAndDesync(t *testing.T) {
	k := New("A")
	k.SetGoal(grid.C(2, 0))
	k.SetPath([]grid.Coord{grid.C(0, 0), grid.C(1, 0), grid.C(2, 0)})

	next, ok := k.Advance(grid.C(0, 0))
	require.True(t, ok)
	assert.Equal(t, grid.C(1, 0), next)

	next, ok = k.Advance(grid.C(1, 0))
	require.True(t, ok)
	assert.Equal(t, grid.C(2, 0), next)

	// Off the path: discarded.
	_, ok = k.Advance(grid.C(5, 5))
	assert.False(t, ok)
	assert.Empty(t, k.Plan().Path)
	_, hasGoal := k.Goal()
	assert.True(t, hasGoal, "desync keeps the goal")
}
