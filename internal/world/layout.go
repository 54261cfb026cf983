// Package world simulates the ground truth the agents act in: the maze with
// its pellets, target and ghosts, and the vacuum world with its dirt, dock
// and battery. Worlds hand agents immutable snapshots and never read agent
// beliefs.
package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gridmind/internal/grid"
)

// ErrParseMaze is returned for malformed maze text.
var ErrParseMaze = errors.New("parse maze")

// Layout is a static maze: its walls, the target start and the ghost spawns.
type Layout struct {
	W, H        int
	Walls       grid.Set
	TargetStart grid.Coord
	Spawns      map[string]grid.Coord
}

// Maze text legend: '#' wall, ' ' or '.' open, 'P' target start, and an
// upper-case letter other than P for a ghost spawn named by that letter.
var classicLayout = []string{
	"#########################",
	"#P          #           #",
	"# ######### # ######### #",
	"# #       # # #       # #",
	"# # #####   #   ##### # #",
	"# #       #   #       # #",
	"#   ## ####   #### ##   #",
	"#   #       #       #  B#",
	"#     #############   CA#",
	"#########################",
}

var layouts = map[string][]string{
	"classic": classicLayout,
}

// LayoutNames lists the built-in layouts.
func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for n := range layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NamedLayout parses a built-in layout.
func NamedLayout(name string) (Layout, error) {
	rows, ok := layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: unknown layout %q", ErrParseMaze, name)
	}
	return ParseLayout(rows)
}

// ParseLayout reads maze text. Rows must share one width, and the maze needs
// exactly one target start and at least one ghost spawn.
func ParseLayout(rows []string) (Layout, error) {
	if len(rows) == 0 {
		return Layout{}, fmt.Errorf("%w: empty maze", ErrParseMaze)
	}
	l := Layout{
		W:      len(rows[0]),
		H:      len(rows),
		Walls:  grid.NewSet(),
		Spawns: map[string]grid.Coord{},
	}
	hasStart := false
	for y, row := range rows {
		if len(row) != l.W {
			return Layout{}, fmt.Errorf("%w: row %d has width %d, want %d", ErrParseMaze, y, len(row), l.W)
		}
		for x, ch := range row {
			c := grid.C(x, y)
			switch {
			case ch == '#':
				l.Walls.Add(c)
			case ch == ' ' || ch == '.':
			case ch == 'P':
				if hasStart {
					return Layout{}, fmt.Errorf("%w: second target start at %s", ErrParseMaze, c)
				}
				l.TargetStart, hasStart = c, true
			case ch >= 'A' && ch <= 'Z':
				id := string(ch)
				if _, dup := l.Spawns[id]; dup {
					return Layout{}, fmt.Errorf("%w: ghost %s spawns twice", ErrParseMaze, id)
				}
				l.Spawns[id] = c
			default:
				return Layout{}, fmt.Errorf("%w: unexpected %q at %s", ErrParseMaze, ch, c)
			}
		}
	}
	if !hasStart {
		return Layout{}, fmt.Errorf("%w: no target start", ErrParseMaze)
	}
	if len(l.Spawns) == 0 {
		return Layout{}, fmt.Errorf("%w: no ghost spawn", ErrParseMaze)
	}
	return l, nil
}

// GhostIDs returns the spawn names in order.
func (l Layout) GhostIDs() []string {
	ids := make([]string, 0, len(l.Spawns))
	for id := range l.Spawns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// InBounds reports whether c lies on the board.
func (l Layout) InBounds(c grid.Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < l.W && c.Y < l.H
}

// IsSpawn reports whether c is a ghost spawn tile.
func (l Layout) IsSpawn(c grid.Coord) bool {
	for _, s := range l.Spawns {
		if s == c {
			return true
		}
	}
	return false
}

// String renders the layout back to maze text.
func (l Layout) String() string {
	var b strings.Builder
	for y := 0; y < l.H; y++ {
		for x := 0; x < l.W; x++ {
			c := grid.C(x, y)
			ch := byte(' ')
			switch {
			case l.Walls.Has(c):
				ch = '#'
			case c == l.TargetStart:
				ch = 'P'
			}
			for id, s := range l.Spawns {
				if s == c {
					ch = id[0]
				}
			}
			b.WriteByte(ch)
		}
		if y < l.H-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
