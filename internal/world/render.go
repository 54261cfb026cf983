package world

import (
	"fmt"
	"strings"

	"gridmind/internal/grid"
)

// RenderMaze draws the maze as text: P target, ghost letters, x spawn,
// # wall, . pellet.
func RenderMaze(m *Maze) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick=%d | Pellets left=%d\n", m.Tick(), m.PelletCount())
	fmt.Fprintf(&b, "Lives=%d | Score=%d\n", max(m.Lives(), 0), m.Score())

	l := m.Layout()
	for y := 0; y < l.H; y++ {
		for x := 0; x < l.W; x++ {
			b.WriteByte(MazeGlyph(m, grid.C(x, y)))
		}
		b.WriteByte('\n')
	}
	switch {
	case m.Victory():
		b.WriteString("VICTORY!\n")
	case m.GameOver():
		b.WriteString("GAME OVER!\n")
	}
	return b.String()
}

// MazeGlyph is the character RenderMaze draws at c.
func MazeGlyph(m *Maze, c grid.Coord) byte {
	if c == m.Target() {
		return 'P'
	}
	for _, id := range m.GhostIDs() {
		if g, _ := m.Ghost(id); g == c {
			return id[0]
		}
	}
	l := m.Layout()
	switch {
	case l.Walls.Has(c):
		return '#'
	case l.IsSpawn(c):
		return 'x'
	case m.HasPellet(c):
		return '.'
	}
	return ' '
}

// RenderVacuum draws the vacuum world: R robot, D dock, # obstacle, * dirt.
func RenderVacuum(v *VacuumWorld) string {
	var b strings.Builder
	st := v.Stats()
	fmt.Fprintf(&b, "t=%d | battery=%d/%d | cleaned=%d | remaining=%d\n",
		st.Steps, st.Battery, st.MaxBattery, st.Cleaned, st.Remaining)
	w, h := v.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := grid.C(x, y)
			ch := byte('.')
			switch {
			case c == v.Pos():
				ch = 'R'
			case v.obstacles.Has(c):
				ch = '#'
			case c == v.Dock():
				ch = 'D'
			case v.HasDirt(c):
				ch = '*'
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
