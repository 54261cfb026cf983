package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logic"
)

func TestJunctionWithThreeOpenNeighbours(t *testing.T) {
	k := kb.New("C")
	centre := grid.C(5, 5)
	MarkSafe(k, centre, grid.View{})
	for _, nb := range []grid.Coord{grid.C(6, 5), grid.C(4, 5), grid.C(5, 6)} {
		MarkSafe(k, nb, grid.View{})
	}

	assert.True(t, k.IsAt(logic.KindJunction, centre))
	assert.False(t, k.IsAt(logic.KindTunnel, centre))
}

func TestNeighbourTriggeredReclassification(t *testing.T) {
	k := kb.New("C")
	centre := grid.C(2, 2)
	MarkSafe(k, centre, grid.View{})
	MarkSafe(k, grid.C(1, 2), grid.View{})
	MarkSafe(k, grid.C(3, 2), grid.View{})
	require.True(t, k.IsAt(logic.KindTunnel, centre))

	// Only the neighbour is marked; the centre is reclassified through it.
	MarkSafe(k, grid.C(2, 1), grid.View{})
	assert.True(t, k.IsAt(logic.KindJunction, centre))
	assert.False(t, k.IsAt(logic.KindTunnel, centre))

	MarkSafe(k, grid.C(2, 3), grid.View{})
	assert.True(t, k.IsAt(logic.KindJunction, centre))
}

func TestPerceivedOpenTilesCount(t *testing.T) {
	k := kb.New("C")
	centre := grid.C(0, 0)
	view := grid.NewView(map[grid.Coord]grid.Label{
		grid.C(1, 0):  grid.LabelPellet,
		grid.C(-1, 0): grid.LabelEmpty,
		grid.C(0, 1):  grid.LabelWall,
		grid.C(0, -1): grid.LabelOther,
	})
	MarkSafe(k, centre, view)
	assert.True(t, k.IsAt(logic.KindJunction, centre))
	assert.Equal(t, 3, OpenNeighbours(k, centre, view))
}

func TestWallDemotesNeighbour(t *testing.T) {
	k := kb.New("C")
	centre := grid.C(2, 2)
	for _, c := range []grid.Coord{centre, grid.C(1, 2), grid.C(3, 2), grid.C(2, 1)} {
		MarkSafe(k, c, grid.View{})
	}
	require.True(t, k.IsAt(logic.KindJunction, centre))

	// A safe neighbour proven to be a wall.
	MarkWall(k, grid.C(2, 1), grid.View{})
	assert.True(t, k.IsAt(logic.KindTunnel, centre))
	assert.False(t, k.IsAt(logic.KindSafe, grid.C(2, 1)))
}

func TestFrontier(t *testing.T) {
	k := kb.New("B")
	MarkSafe(k, grid.C(0, 0), grid.View{})
	MarkSafe(k, grid.C(1, 0), grid.View{})
	MarkWall(k, grid.C(0, 1), grid.View{})

	f := Frontier(k)
	assert.Equal(t, []grid.Coord{grid.C(0, -1), grid.C(1, -1), grid.C(-1, 0), grid.C(2, 0), grid.C(1, 1)}, f.Sorted())
	assert.True(t, IsFrontier(k, grid.C(2, 0)))
	assert.False(t, IsFrontier(k, grid.C(0, 1)))
	assert.False(t, IsFrontier(k, grid.C(5, 5)))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassNone, Classify(1))
	assert.Equal(t, ClassTunnel, Classify(2))
	assert.Equal(t, ClassJunction, Classify(3))
	assert.Equal(t, ClassJunction, Classify(4))
	assert.Equal(t, "junction", ClassJunction.String())
}
