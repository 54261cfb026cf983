package grid

// FindPath runs breadth-first search from start to goal through tiles for
// which traversable holds. The returned path starts with start and ends with
// goal. The goal itself is accepted as the last step even when it is not
// traversable, so an agent can plan onto a tile it has not confirmed yet.
func FindPath(start, goal Coord, traversable func(Coord) bool) ([]Coord, bool) {
	if start == goal {
		return []Coord{start}, true
	}

	parent := map[Coord]Coord{start: start}
	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if n == goal {
				parent[n] = cur
				return walkBack(parent, start, goal), true
			}
			if _, seen := parent[n]; seen || !traversable(n) {
				continue
			}
			parent[n] = cur
			queue = append(queue, n)
		}
	}
	return nil, false
}

func walkBack(parent map[Coord]Coord, start, goal Coord) []Coord {
	var rev []Coord
	for c := goal; c != start; c = parent[c] {
		rev = append(rev, c)
	}
	rev = append(rev, start)
	path := make([]Coord, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// Nearest returns the tile closest to start by path distance among those
// matching isTarget. Like FindPath, a target is accepted one step beyond
// the traversable region.
func Nearest(start Coord, isTarget, traversable func(Coord) bool) (Coord, bool) {
	if isTarget(start) {
		return start, true
	}
	seen := map[Coord]bool{start: true}
	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if isTarget(n) {
				return n, true
			}
			if seen[n] || !traversable(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return Coord{}, false
}

// Distances returns the BFS distance from start to every traversable tile
// reachable from it, start included.
func Distances(start Coord, traversable func(Coord) bool) map[Coord]int {
	dist := map[Coord]int{start: 0}
	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if _, seen := dist[n]; seen || !traversable(n) {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// Farthest returns the reachable traversable tile with the greatest path
// distance from start. Ties go to the tile first in row-major order.
func Farthest(start Coord, traversable func(Coord) bool) (Coord, bool) {
	var (
		best  Coord
		bestD = 0
		found bool
	)
	for c, d := range Distances(start, traversable) {
		if d == 0 {
			continue
		}
		if !found || d > bestD || (d == bestD && c.Less(best)) {
			best, bestD, found = c, d, true
		}
	}
	return best, found
}
