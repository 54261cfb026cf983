package world

import (
	"fmt"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"gridmind/internal/grid"
)

// Terrain styles for vacuum world generation.
const (
	TerrainScatter = "scatter" // obstacles sampled uniformly
	TerrainNoise   = "noise"   // obstacles on the highest simplex noise peaks, so they clump
)

// VacuumGen holds vacuum world generation parameters.
type VacuumGen struct {
	W, H            int
	ObstacleDensity float64 // fraction of non-dock tiles that are obstacles
	DirtDensity     float64 // fraction of free tiles that start dirty
	Dock            grid.Coord
	Terrain         string
}

// DefaultVacuumGen returns the shipped generation settings.
func DefaultVacuumGen() VacuumGen {
	return VacuumGen{W: 8, H: 6, ObstacleDensity: 0.1, DirtDensity: 0.1, Terrain: TerrainScatter}
}

// noiseFrequency scales tile coordinates into noise space.
const noiseFrequency = 0.35

// GenerateVacuum places obstacles and dirt. The dock is never an obstacle
// and its neighbours are cleared so the robot can always leave it. At least
// one free tile is dirty.
func GenerateVacuum(rng *rand.Rand, g VacuumGen) (obstacles, dirt grid.Set, err error) {
	if g.W <= 0 || g.H <= 0 {
		return nil, nil, fmt.Errorf("vacuum world %dx%d: size must be positive", g.W, g.H)
	}
	var cells []grid.Coord
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if c := grid.C(x, y); c != g.Dock {
				cells = append(cells, c)
			}
		}
	}

	nObs := min(max(int(g.ObstacleDensity*float64(len(cells))), 0), len(cells))
	obstacles = grid.NewSet()
	switch g.Terrain {
	case TerrainScatter, "":
		for _, i := range rng.Perm(len(cells))[:nObs] {
			obstacles.Add(cells[i])
		}
	case TerrainNoise:
		noise := opensimplex.NewNormalized(rng.Int63())
		ranked := append([]grid.Coord(nil), cells...)
		height := make(map[grid.Coord]float64, len(ranked))
		for _, c := range ranked {
			height[c] = noise.Eval2(float64(c.X)*noiseFrequency, float64(c.Y)*noiseFrequency)
		}
		sort.SliceStable(ranked, func(i, j int) bool { return height[ranked[i]] > height[ranked[j]] })
		for _, c := range ranked[:nObs] {
			obstacles.Add(c)
		}
	default:
		return nil, nil, fmt.Errorf("unknown terrain %q", g.Terrain)
	}
	for _, n := range g.Dock.Neighbors() {
		obstacles.Delete(n)
	}

	var free []grid.Coord
	for _, c := range cells {
		if !obstacles.Has(c) {
			free = append(free, c)
		}
	}
	nDirt := int(g.DirtDensity * float64(len(free)))
	if nDirt < 1 {
		nDirt = 1
	}
	if nDirt > len(free) {
		nDirt = len(free)
	}
	dirt = grid.NewSet()
	for _, i := range rng.Perm(len(free))[:nDirt] {
		dirt.Add(free[i])
	}
	return obstacles, dirt, nil
}
