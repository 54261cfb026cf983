package world

import (
	"gridmind/internal/grid"
	"gridmind/internal/perception"
)

// Percepts builds ghost id's snapshot for the current tick. A ghost sees its
// own tile and up to the sight radius along each cardinal direction; a ray
// stops at the board edge or at the first wall, which is itself seen.
func (m *Maze) Percepts(id string) (perception.Snapshot, bool) {
	self, ok := m.ghosts[id]
	if !ok {
		return perception.Snapshot{}, false
	}

	cells := map[grid.Coord]grid.Label{self: m.labelAt(self, id)}
	for _, a := range grid.Cardinals() {
		c := self
		for i := 0; i < m.opts.SightRadius; i++ {
			c = c.Add(a.Delta())
			if !m.layout.InBounds(c) {
				break
			}
			cells[c] = m.labelAt(c, id)
			if cells[c] == grid.LabelWall {
				break
			}
		}
	}

	s := perception.Snapshot{
		Tick: m.tick,
		Self: self,
		View: grid.NewView(cells),
	}
	if _, seen := cells[m.target]; seen {
		s.Target, s.TargetVisible = m.target, true
	}
	for _, other := range m.GhostIDs() {
		if other == id {
			continue
		}
		if pos := m.ghosts[other]; pos != self {
			if _, seen := cells[pos]; seen {
				s.Others = append(s.Others, perception.Sighting{ID: other, Pos: pos})
			}
		}
	}
	return s, true
}

// labelAt is what ghost id perceives at c. The target outranks other ghosts,
// which outrank pellets.
func (m *Maze) labelAt(c grid.Coord, id string) grid.Label {
	if m.layout.Walls.Has(c) {
		return grid.LabelWall
	}
	if c == m.target {
		return grid.LabelTarget
	}
	for other, pos := range m.ghosts {
		if other != id && pos == c {
			return grid.LabelOther
		}
	}
	if m.pellets.Has(c) {
		return grid.LabelPellet
	}
	return grid.LabelEmpty
}
