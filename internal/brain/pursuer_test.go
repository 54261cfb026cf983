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

func heading(t *testing.T, k *kb.KB) grid.Coord {
	t.Helper()
	dx, dy := logic.Var("DX"), logic.Var("DY")
	subs := k.Query(logic.Heading(dx, dy))
	require.Len(t, subs, 1)
	return grid.C(subs[0].Int(dx), subs[0].Int(dy))
}

func TestPursuer_Transitions(t *testing.T) {
	p := NewPursuer(scriptedRand(1))
	k := kb.New("A", p.KBOptions()...)

	p.Tell(k, perception.Snapshot{Tick: 0, Self: grid.C(0, 0), Target: grid.C(3, 0), TargetVisible: true})
	assert.Equal(t, ModeChase, Mode(k))
	assert.Equal(t, grid.Right, p.Ask(k))

	p.Tell(k, perception.Snapshot{Tick: 1, Self: grid.C(1, 0), Target: grid.C(2, 0), TargetVisible: true})
	assert.Equal(t, ModeChase, Mode(k))
	v, ok := targetVector(k)
	require.True(t, ok)
	assert.Equal(t, grid.C(-1, 0), v)
	assert.Equal(t, grid.Right, p.Ask(k))

	p.Tell(k, perception.Snapshot{Tick: 2, Self: grid.C(1, 0)})
	assert.Equal(t, ModePursue, Mode(k))
	assert.Equal(t, grid.Right, p.Ask(k), "pursue heads for the last sighting")

	// Standing on the last sighting with walls above and below. The target
	// moved left, so right (back the way it came) is excluded and left is
	// the only candidate.
	view := cells{
		grid.C(2, -1): grid.LabelWall,
		grid.C(2, 1):  grid.LabelWall,
		grid.C(1, 0):  grid.LabelEmpty,
		grid.C(3, 0):  grid.LabelEmpty,
	}
	p.Tell(k, perception.Snapshot{Tick: 3, Self: grid.C(2, 0), View: grid.NewView(view)})
	assert.Equal(t, ModeInvestigate, Mode(k))
	goal, ok := k.Goal()
	require.True(t, ok)
	assert.Equal(t, grid.C(1, 0), goal)
	assert.Equal(t, grid.C(-1, 0), heading(t, k))
	assert.Equal(t, grid.Left, p.Ask(k))
}

func TestPursuer_SightOverridesEveryMode(t *testing.T) {
	p := NewPursuer(scriptedRand(0))
	k := kb.New("A")
	k.Assert(logic.Mode(logic.Sym(ModeInvestigate)))

	p.Tell(k, perception.Snapshot{Tick: 0, Self: grid.C(0, 0), Target: grid.C(0, 3), TargetVisible: true})
	assert.Equal(t, ModeChase, Mode(k))
	assert.Equal(t, grid.Down, p.Ask(k))
}

func TestPursuer_InvestigateIntoWallFallsBackToPatrol(t *testing.T) {
	p := NewPursuer(scriptedRand(0))
	k := kb.New("A")
	k.Assert(logic.Mode(logic.Sym(ModeInvestigate)))
	k.SetGoal(grid.C(1, 0))

	view := cells{grid.C(1, 0): grid.LabelWall}
	p.Tell(k, perception.Snapshot{Tick: 0, Self: grid.C(0, 0), View: grid.NewView(view)})
	assert.Equal(t, ModePatrol, Mode(k))
	_, ok := k.Goal()
	assert.False(t, ok)
}

func TestPursuer_PatrolKeepsMomentum(t *testing.T) {
	p := NewPursuer(scriptedRand(2, 0))
	k := kb.New("A")

	p.Tell(k, perception.Snapshot{Tick: 0, Self: grid.C(5, 5)})
	assert.Equal(t, ModePatrol, Mode(k))
	require.Equal(t, grid.Left, p.Ask(k), "first patrol move is random")

	p.Tell(k, perception.Snapshot{Tick: 1, Self: grid.C(4, 5)})
	assert.Equal(t, grid.Left, p.Ask(k), "momentum continues")

	// Wall ahead: turn to a random non-reversing direction.
	view := cells{grid.C(2, 5): grid.LabelWall}
	p.Tell(k, perception.Snapshot{Tick: 2, Self: grid.C(3, 5), View: grid.NewView(view)})
	assert.Equal(t, grid.Up, p.Ask(k))
}

func TestPursuer_DeadEndReverses(t *testing.T) {
	p := NewPursuer(scriptedRand(0))
	k := kb.New("A")
	k.Assert(logic.Momentum(logic.Int(1), logic.Int(0)))

	self := grid.C(5, 5)
	view := cells{
		grid.C(6, 5): grid.LabelWall,
		grid.C(5, 4): grid.LabelWall,
		grid.C(5, 6): grid.LabelWall,
	}
	p.Tell(k, perception.Snapshot{Tick: 0, Self: self, View: grid.NewView(view)})
	assert.Equal(t, grid.Left, p.Ask(k))
}
