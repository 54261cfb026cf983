package kb

import (
	"gridmind/internal/grid"
	"gridmind/internal/logic"
)

// Location helpers for the (x, y) predicate family.

// At builds the ground location fact of kind at c.
func At(kind logic.Kind, c grid.Coord) logic.Predicate {
	return logic.At(kind, c.X, c.Y)
}

// AssertAt asserts kind(c.X, c.Y).
func (k *KB) AssertAt(kind logic.Kind, c grid.Coord) bool {
	return k.Assert(At(kind, c))
}

// RetractAt retracts kind(c.X, c.Y).
func (k *KB) RetractAt(kind logic.Kind, c grid.Coord) bool {
	return k.Retract(At(kind, c)) > 0
}

// IsAt reports whether kind(c.X, c.Y) holds.
func (k *KB) IsAt(kind logic.Kind, c grid.Coord) bool {
	return k.Holds(At(kind, c))
}

// Tiles collects every coordinate for which a location fact of kind holds.
func (k *KB) Tiles(kind logic.Kind) grid.Set {
	s := make(grid.Set, k.Count(kind))
	for f := range k.byKind[kind] {
		if x, y, ok := f.XY(); ok {
			s.Add(grid.C(x, y))
		}
	}
	return s
}

// Locate returns the coordinate of the single fact of a functional location
// kind such as position or target_last.
func (k *KB) Locate(kind logic.Kind) (grid.Coord, bool) {
	for f := range k.byKind[kind] {
		if x, y, ok := f.XY(); ok {
			return grid.C(x, y), true
		}
	}
	return grid.Coord{}, false
}

// Position returns the owner's believed position.
func (k *KB) Position() (grid.Coord, bool) {
	return k.Locate(logic.KindPosition)
}

// Known reports whether c is known to be either safe or a wall.
func (k *KB) Known(c grid.Coord) bool {
	return k.IsAt(logic.KindSafe, c) || k.IsAt(logic.KindWall, c)
}
