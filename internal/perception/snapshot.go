// Package perception turns environment percepts into knowledge base facts.
// It is the TELL half of every agent.
package perception

import (
	"gridmind/internal/grid"
)

// Sighting is another agent seen this tick.
type Sighting struct {
	ID  string
	Pos grid.Coord
}

// Snapshot is one tick of percepts. Worlds build a fresh Snapshot every tick
// and agents never mutate it.
type Snapshot struct {
	Tick int
	Self grid.Coord

	// Target is meaningful only when TargetVisible is set.
	Target        grid.Coord
	TargetVisible bool

	Others []Sighting
	View   grid.View

	// Vacuum world fields.
	ItemHere bool
	Blocked  []grid.Coord
	Terminal bool
}

// TargetPos returns the directly seen target, falling back to a TARGET
// label in the view.
func (s Snapshot) TargetPos() (grid.Coord, bool) {
	if s.TargetVisible {
		return s.Target, true
	}
	for _, c := range s.View.Coords() {
		if l, _ := s.View.At(c); l == grid.LabelTarget {
			return c, true
		}
	}
	return grid.Coord{}, false
}
