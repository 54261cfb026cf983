package kb

import (
	"gridmind/internal/grid"
)

// Plan is scratch state used only while answering ASK: the active goal and
// the path planned toward it. It is not part of the fact set.
type Plan struct {
	Goal    grid.Coord
	HasGoal bool
	Path    []grid.Coord
}

// Plan returns a copy of the scratch plan.
func (k *KB) Plan() Plan {
	p := k.plan
	p.Path = append([]grid.Coord(nil), k.plan.Path...)
	return p
}

// Goal returns the active goal.
func (k *KB) Goal() (grid.Coord, bool) {
	return k.plan.Goal, k.plan.HasGoal
}

// SetGoal makes g the active goal. A different goal discards the path.
func (k *KB) SetGoal(g grid.Coord) {
	if k.plan.HasGoal && k.plan.Goal == g {
		return
	}
	k.plan = Plan{Goal: g, HasGoal: true}
}

// ClearPlan drops both goal and path.
func (k *KB) ClearPlan() {
	k.plan = Plan{}
}

// SetPath stores a planned path toward the active goal.
func (k *KB) SetPath(path []grid.Coord) {
	k.plan.Path = append([]grid.Coord(nil), path...)
}

// Advance consumes the stored path from pos. When pos lies on the path the
// path is trimmed to start at pos and the next tile is returned. Otherwise
// the path is discarded and ok is false, so the caller replans from the
// live position.
func (k *KB) Advance(pos grid.Coord) (next grid.Coord, ok bool) {
	for i, c := range k.plan.Path {
		if c != pos {
			continue
		}
		k.plan.Path = k.plan.Path[i:]
		if len(k.plan.Path) < 2 {
			return grid.Coord{}, false
		}
		return k.plan.Path[1], true
	}
	k.plan.Path = nil
	return grid.Coord{}, false
}
