package brain

import (
	"math/rand"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logging"
	"gridmind/internal/logic"
)

func isWall(k *kb.KB, c grid.Coord) bool {
	return k.IsAt(logic.KindWall, c)
}

// greedyStep moves toward goal along the dominant axis, then the secondary
// axis, then any other cardinal in random order. Known walls are never
// entered. At the goal, or fully boxed in, it waits.
func greedyStep(k *kb.KB, rng *rand.Rand, self, goal grid.Coord) grid.Action {
	d := goal.Sub(self)
	if d.IsZero() {
		return grid.Wait
	}

	horiz, _ := grid.ActionFor(grid.C(grid.Sign(d.X), 0))
	vert, _ := grid.ActionFor(grid.C(0, grid.Sign(d.Y)))

	var order []grid.Action
	if abs(d.X) > abs(d.Y) {
		order = append(order, horiz)
		if d.Y != 0 {
			order = append(order, vert)
		}
	} else {
		order = append(order, vert)
		if d.X != 0 {
			order = append(order, horiz)
		}
	}

	tried := map[grid.Action]bool{}
	for _, a := range order {
		tried[a] = true
		if !isWall(k, self.Add(a.Delta())) {
			return a
		}
	}

	cards := grid.Cardinals()
	for _, i := range rng.Perm(len(cards)) {
		a := cards[i]
		if tried[a] || isWall(k, self.Add(a.Delta())) {
			continue
		}
		return a
	}
	return grid.Wait
}

// randomMove picks uniformly among cardinal moves whose destination is not a
// known wall and passes allow (nil allows everything).
func randomMove(k *kb.KB, rng *rand.Rand, self grid.Coord, allow func(grid.Coord) bool) grid.Action {
	var options []grid.Action
	for _, a := range grid.Cardinals() {
		next := self.Add(a.Delta())
		if isWall(k, next) || (allow != nil && !allow(next)) {
			continue
		}
		options = append(options, a)
	}
	if len(options) == 0 {
		return grid.Wait
	}
	return options[rng.Intn(len(options))]
}

// travel advances one edge along the planned path to the active goal,
// replanning with BFS over traversable when there is no path, the agent has
// left it, or a wall has since been learned on it. ok is false when there is
// no goal, the goal is reached, or the goal cannot be reached.
func travel(k *kb.KB, self grid.Coord, traversable func(grid.Coord) bool) (grid.Action, bool) {
	goal, ok := k.Goal()
	if !ok || goal == self {
		return grid.Wait, false
	}

	next, ok := k.Advance(self)
	if ok && pathBlocked(k) {
		logging.PathDebug("[%s] path to %s crosses a learned wall, replanning", k.Owner(), goal)
		ok = false
	}
	if !ok {
		path, found := grid.FindPath(self, goal, traversable)
		if !found {
			logging.PathDebug("[%s] no path %s -> %s", k.Owner(), self, goal)
			return grid.Wait, false
		}
		k.SetPath(path)
		next = path[1]
	}

	a, ok := grid.Toward(self, next)
	if !ok {
		k.SetPath(nil)
		return grid.Wait, false
	}
	return a, true
}

func pathBlocked(k *kb.KB) bool {
	for _, c := range k.Plan().Path {
		if isWall(k, c) {
			return true
		}
	}
	return false
}

func vectorAction(v grid.Coord) (grid.Action, bool) {
	if v.IsZero() {
		return grid.Wait, false
	}
	if abs(v.X) > abs(v.Y) {
		return grid.ActionFor(grid.C(grid.Sign(v.X), 0))
	}
	return grid.ActionFor(grid.C(0, grid.Sign(v.Y)))
}

// targetVector reads the believed target displacement.
func targetVector(k *kb.KB) (grid.Coord, bool) {
	dx, dy := logic.Var("DX"), logic.Var("DY")
	subs := k.Query(logic.TargetVector(dx, dy))
	if len(subs) == 0 {
		return grid.Coord{}, false
	}
	return grid.C(subs[0].Int(dx), subs[0].Int(dy)), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
