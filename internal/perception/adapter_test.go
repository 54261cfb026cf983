package perception

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logic"
)

type cells map[grid.Coord]grid.Label

func snap(tick int, self grid.Coord, view cells) Snapshot {
	return Snapshot{Tick: tick, Self: self, View: grid.NewView(view)}
}

func clueTiles(k *kb.KB) []grid.Coord {
	var out []grid.Coord
	for _, f := range k.Facts(logic.KindClue) {
		x, y, _ := f.XY()
		out = append(out, grid.C(x, y))
	}
	return out
}

func TestTell_OwnPositionFirst(t *testing.T) {
	k := kb.New("A")
	Tell(k, snap(0, grid.C(2, 2), nil), Options{})

	pos, ok := k.Position()
	require.True(t, ok)
	assert.Equal(t, grid.C(2, 2), pos)
	assert.True(t, k.IsAt(logic.KindSafe, grid.C(2, 2)))
	assert.True(t, k.Holds(logic.VisitedAt(logic.Int(2), logic.Int(2), logic.Int(0))))
}

func TestTell_WallRetractsSafe(t *testing.T) {
	k := kb.New("A")
	k.AssertAt(logic.KindSafe, grid.C(3, 2))
	Tell(k, snap(0, grid.C(2, 2), cells{grid.C(3, 2): grid.LabelWall, grid.C(1, 2): grid.LabelEmpty}), Options{})

	assert.True(t, k.IsAt(logic.KindWall, grid.C(3, 2)))
	assert.False(t, k.IsAt(logic.KindSafe, grid.C(3, 2)))
	assert.True(t, k.IsAt(logic.KindSafe, grid.C(1, 2)))
}

func TestTell_ClueFromVanishedPellet(t *testing.T) {
	k := kb.New("B")
	opts := Options{MaxClues: 2}
	Tell(k, snap(0, grid.C(0, 0), cells{grid.C(1, 0): grid.LabelPellet, grid.C(2, 0): grid.LabelPellet}), opts)
	require.Equal(t, 2, k.Count(logic.KindPelletSeen))

	Tell(k, snap(1, grid.C(0, 0), cells{grid.C(1, 0): grid.LabelEmpty, grid.C(2, 0): grid.LabelPellet}), opts)
	assert.Equal(t, []grid.Coord{grid.C(1, 0)}, clueTiles(k))
	assert.False(t, k.IsAt(logic.KindPelletSeen, grid.C(1, 0)))
	assert.True(t, k.Holds(logic.Clue(logic.Int(1), logic.Int(0), logic.Int(1))))
}

func TestTell_ClueDecaysAndIsBounded(t *testing.T) {
	k := kb.New("B", kb.WithTTL(logic.KindClue, 20))
	opts := Options{MaxClues: 2}
	pellets := cells{grid.C(1, 0): grid.LabelPellet, grid.C(2, 0): grid.LabelPellet, grid.C(3, 0): grid.LabelPellet}
	Tell(k, snap(0, grid.C(0, 0), pellets), opts)

	Tell(k, snap(1, grid.C(0, 0), cells{grid.C(1, 0): grid.LabelEmpty}), opts)
	Tell(k, snap(2, grid.C(0, 0), cells{grid.C(2, 0): grid.LabelEmpty}), opts)
	Tell(k, snap(3, grid.C(0, 0), cells{grid.C(3, 0): grid.LabelEmpty}), opts)
	assert.Equal(t, []grid.Coord{grid.C(2, 0), grid.C(3, 0)}, clueTiles(k), "oldest clue evicted")

	Tell(k, snap(22, grid.C(0, 0), nil), opts)
	assert.Equal(t, []grid.Coord{grid.C(3, 0)}, clueTiles(k))
	Tell(k, snap(23, grid.C(0, 0), nil), opts)
	assert.Empty(t, clueTiles(k))
}

func TestTell_ClueConsumedOnArrival(t *testing.T) {
	k := kb.New("B")
	opts := Options{MaxClues: 2}
	Tell(k, snap(0, grid.C(0, 0), cells{grid.C(1, 0): grid.LabelPellet}), opts)
	Tell(k, snap(1, grid.C(0, 0), cells{grid.C(1, 0): grid.LabelEmpty}), opts)
	require.Len(t, clueTiles(k), 1)

	Tell(k, snap(2, grid.C(1, 0), nil), opts)
	assert.Empty(t, clueTiles(k))
}

func TestTell_SightClearsCluesAndDerivesVector(t *testing.T) {
	k := kb.New("C")
	opts := Options{MaxClues: 2}
	Tell(k, snap(0, grid.C(0, 0), cells{grid.C(1, 0): grid.LabelPellet}), opts)
	Tell(k, snap(1, grid.C(0, 0), cells{grid.C(1, 0): grid.LabelEmpty}), opts)
	require.Len(t, clueTiles(k), 1)

	s := snap(2, grid.C(0, 0), cells{grid.C(3, 0): grid.LabelTarget})
	Tell(k, s, opts)
	assert.Empty(t, clueTiles(k))
	seen, ok := k.Locate(logic.KindTargetSeen)
	require.True(t, ok)
	assert.Equal(t, grid.C(3, 0), seen)
	assert.Equal(t, 0, k.Count(logic.KindTargetVector), "no previous sighting")

	s = snap(3, grid.C(0, 0), nil)
	s.Target, s.TargetVisible = grid.C(4, 0), true
	Tell(k, s, opts)
	assert.True(t, k.Holds(logic.TargetVector(logic.Int(1), logic.Int(0))))

	// Standing still keeps the stale vector.
	Tell(k, s, opts)
	assert.True(t, k.Holds(logic.TargetVector(logic.Int(1), logic.Int(0))))

	// Out of sight: seen goes, last stays.
	Tell(k, snap(5, grid.C(0, 0), nil), opts)
	_, ok = k.Locate(logic.KindTargetSeen)
	assert.False(t, ok)
	last, ok := k.Locate(logic.KindTargetLast)
	require.True(t, ok)
	assert.Equal(t, grid.C(4, 0), last)
}

func TestTell_OtherAgentsReplacedEachTick(t *testing.T) {
	k := kb.New("C")
	s := snap(0, grid.C(0, 0), nil)
	s.Others = []Sighting{{ID: "A", Pos: grid.C(2, 0)}, {ID: "B", Pos: grid.C(0, 3)}}
	Tell(k, s, Options{})
	assert.Equal(t, 2, k.Count(logic.KindAgentPos))

	Tell(k, snap(1, grid.C(0, 0), nil), Options{})
	assert.Equal(t, 0, k.Count(logic.KindAgentPos))
}

func TestTell_RegionCounts(t *testing.T) {
	k := kb.New("C")
	opts := Options{MaxClues: 2, Regions: &Quadrants{W: 10, H: 10}}
	Tell(k, snap(0, grid.C(0, 0), cells{
		grid.C(1, 0): grid.LabelPellet,
		grid.C(2, 0): grid.LabelPellet,
		grid.C(7, 8): grid.LabelPellet,
	}), opts)
	assert.Equal(t, 2, RegionCount(k, "R1"))
	assert.Equal(t, 1, RegionCount(k, "R4"))
	assert.Equal(t, 0, RegionCount(k, "R2"))

	Tell(k, snap(1, grid.C(0, 0), cells{grid.C(1, 0): grid.LabelEmpty}), opts)
	assert.Equal(t, 1, RegionCount(k, "R1"))

	r, n, ok := Richest(k, *opts.Regions)
	require.True(t, ok)
	assert.Equal(t, "R1", r)
	assert.Equal(t, 1, n)
}

func TestQuadrants(t *testing.T) {
	q := Quadrants{W: 25, H: 10}
	for c, want := range map[grid.Coord]string{
		grid.C(0, 0):  "R1",
		grid.C(12, 4): "R2",
		grid.C(11, 5): "R3",
		grid.C(24, 9): "R4",
	} {
		got, ok := q.Of(c)
		require.True(t, ok)
		assert.Equal(t, want, got, "%s", c)
	}
	_, ok := q.Of(grid.C(25, 0))
	assert.False(t, ok)
}

func TestTellVacuum(t *testing.T) {
	k := kb.New("V")
	TellVacuum(k, Snapshot{
		Tick:     1,
		Self:     grid.C(1, 1),
		ItemHere: true,
		Blocked:  []grid.Coord{grid.C(1, 0)},
	})
	assert.True(t, k.IsAt(logic.KindDirtAt, grid.C(1, 1)))
	assert.True(t, k.IsAt(logic.KindBlocked, grid.C(1, 0)))
	pos, ok := k.Position()
	require.True(t, ok)
	assert.Equal(t, grid.C(1, 1), pos)
}
