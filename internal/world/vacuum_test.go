package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridmind/internal/grid"
)

func TestVacuumWorld_SenseReportsBlockedNeighbours(t *testing.T) {
	v := NewVacuumWorld(2, 2, grid.NewSet(grid.C(1, 0)), grid.NewSet(grid.C(1, 1)), grid.C(0, 0), 10)
	s := v.Sense()
	assert.Equal(t, grid.C(0, 0), s.Self)
	assert.False(t, s.ItemHere)
	assert.ElementsMatch(t, []grid.Coord{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}}, s.Blocked)
	assert.False(t, s.Terminal)
}

func TestVacuumWorld_StepBatteryAndBumps(t *testing.T) {
	v := NewVacuumWorld(2, 2, nil, grid.NewSet(grid.C(1, 1)), grid.C(0, 0), 10)

	v.Step(grid.Up)
	assert.True(t, v.Bumped())
	assert.Equal(t, grid.C(0, 0), v.Pos())
	assert.Equal(t, 9, v.Battery())

	v.Step(grid.Wait)
	assert.Equal(t, 10, v.Battery(), "recharge on the dock is capped")

	v.Step(grid.Right)
	v.Step(grid.Down)
	require.True(t, v.Sense().ItemHere)
	v.Step(grid.Vacuum)

	assert.True(t, v.Done())
	assert.Equal(t, VacuumStats{Steps: 5, Cleaned: 1, Remaining: 0, Battery: 7, MaxBattery: 10, Bumps: 1}, v.Stats())
}

func TestVacuumWorld_FlatBatteryStops(t *testing.T) {
	v := NewVacuumWorld(3, 1, nil, grid.NewSet(grid.C(2, 0)), grid.C(0, 0), 1)
	v.Step(grid.Right)
	v.Step(grid.Right)
	assert.Equal(t, grid.C(1, 0), v.Pos())
	assert.Equal(t, 1, v.Time())
	assert.True(t, v.Done())
	assert.True(t, v.Sense().Terminal)
}

func TestVacuumWorld_ResetRestoresDirt(t *testing.T) {
	v := NewVacuumWorld(2, 1, nil, grid.NewSet(grid.C(0, 0)), grid.C(0, 0), 5)
	v.Step(grid.Vacuum)
	require.Equal(t, 0, v.DirtCount())
	v.Reset(grid.C(1, 0), 3)
	assert.Equal(t, 1, v.DirtCount())
	assert.Equal(t, grid.C(1, 0), v.Pos())
	assert.Equal(t, 3, v.Battery())
	assert.Equal(t, 0, v.Stats().Steps)
}

func TestGenerateVacuum(t *testing.T) {
	for _, terrain := range []string{TerrainScatter, TerrainNoise} {
		t.Run(terrain, func(t *testing.T) {
			g := DefaultVacuumGen()
			g.ObstacleDensity = 0.3
			g.Terrain = terrain

			obs, dirt, err := GenerateVacuum(rand.New(rand.NewSource(3)), g)
			require.NoError(t, err)
			assert.False(t, obs.Has(g.Dock))
			for _, n := range g.Dock.Neighbors() {
				assert.False(t, obs.Has(n), "dock neighbour %s cleared", n)
			}
			assert.LessOrEqual(t, len(obs), int(0.3*float64(g.W*g.H-1)))
			assert.NotEmpty(t, dirt)
			for c := range dirt {
				assert.False(t, obs.Has(c))
				assert.NotEqual(t, g.Dock, c)
			}

			obs2, dirt2, err := GenerateVacuum(rand.New(rand.NewSource(3)), g)
			require.NoError(t, err)
			assert.Equal(t, obs.Sorted(), obs2.Sorted())
			assert.Equal(t, dirt.Sorted(), dirt2.Sorted())
		})
	}

	_, _, err := GenerateVacuum(rand.New(rand.NewSource(1)), VacuumGen{W: 2, H: 2, Terrain: "lava"})
	assert.Error(t, err)
	_, _, err = GenerateVacuum(rand.New(rand.NewSource(1)), VacuumGen{})
	assert.Error(t, err)
}

func TestRenderVacuum(t *testing.T) {
	v := NewVacuumWorld(3, 1, grid.NewSet(grid.C(2, 0)), grid.NewSet(grid.C(1, 0)), grid.C(0, 0), 4)
	assert.Equal(t, "t=0 | battery=4/4 | cleaned=0 | remaining=1\nR*#\n", RenderVacuum(v))
}
