package perception

import (
	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logic"
)

// Quadrants splits a w x h board into four regions R1..R4:
// top-left, top-right, bottom-left, bottom-right.
type Quadrants struct {
	W, H int
}

// Names returns the region identifiers in order.
func (q Quadrants) Names() []string {
	return []string{"R1", "R2", "R3", "R4"}
}

// Of returns the region holding c.
func (q Quadrants) Of(c grid.Coord) (string, bool) {
	if c.X < 0 || c.Y < 0 || c.X >= q.W || c.Y >= q.H {
		return "", false
	}
	midX, midY := q.W/2, q.H/2
	switch {
	case c.X < midX && c.Y < midY:
		return "R1", true
	case c.Y < midY:
		return "R2", true
	case c.X < midX:
		return "R3", true
	}
	return "R4", true
}

// RegionCount reads the believed pellet count of a region.
func RegionCount(k *kb.KB, region string) int {
	subs := k.Query(logic.RegionPellets(logic.Sym(region), logic.Var("N")))
	if len(subs) == 0 {
		return 0
	}
	return subs[0].Int(logic.Var("N"))
}

// Richest returns the region with the highest positive count. Ties go to
// the first region in name order.
func Richest(k *kb.KB, q Quadrants) (string, int, bool) {
	best, bestN := "", 0
	for _, r := range q.Names() {
		if n := RegionCount(k, r); n > bestN {
			best, bestN = r, n
		}
	}
	return best, bestN, best != ""
}

func seedRegions(k *kb.KB, q *Quadrants) {
	if q == nil || k.Count(logic.KindRegionPellets) > 0 {
		return
	}
	for _, r := range q.Names() {
		k.Assert(logic.RegionPellets(logic.Sym(r), logic.Int(0)))
	}
}

func bumpRegion(k *kb.KB, q *Quadrants, c grid.Coord, delta int) {
	if q == nil {
		return
	}
	r, ok := q.Of(c)
	if !ok {
		return
	}
	n := RegionCount(k, r) + delta
	if n < 0 {
		n = 0
	}
	k.Assert(logic.RegionPellets(logic.Sym(r), logic.Int(n)))
}
