// Package grid holds the geometry shared by worlds and agents: coordinates,
// actions, percept labels and breadth-first search over tile sets.
package grid

import (
	"fmt"
	"sort"
)

// Coord is a tile position. Y grows downward.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{x, y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) Add(d Coord) Coord { return Coord{c.X + d.X, c.Y + d.Y} }
func (c Coord) Sub(d Coord) Coord { return Coord{c.X - d.X, c.Y - d.Y} }

// IsZero reports whether c is the origin, which doubles as the null vector.
func (c Coord) IsZero() bool {
	return c.X == 0 && c.Y == 0
}

// Manhattan returns the L1 distance between c and o.
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Neighbors returns the four cardinal neighbours in a fixed order:
// east, west, south, north.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		{c.X + 1, c.Y},
		{c.X - 1, c.Y},
		{c.X, c.Y + 1},
		{c.X, c.Y - 1},
	}
}

// Adjacent reports whether o is a cardinal neighbour of c.
func (c Coord) Adjacent(o Coord) bool {
	return c.Manhattan(o) == 1
}

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// SortCoords sorts in place, row-major.
func SortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Less(cs[j]) })
}

// Set is a set of tiles.
type Set map[Coord]struct{}

// NewSet builds a set from the given tiles.
func NewSet(cs ...Coord) Set {
	s := make(Set, len(cs))
	for _, c := range cs {
		s[c] = struct{}{}
	}
	return s
}

func (s Set) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

func (s Set) Add(c Coord) {
	s[c] = struct{}{}
}

func (s Set) Delete(c Coord) {
	delete(s, c)
}

// Sorted returns the members row-major.
func (s Set) Sorted() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	SortCoords(out)
	return out
}

// Contains adapts the set to a tile predicate.
func (s Set) Contains() func(Coord) bool {
	return s.Has
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
