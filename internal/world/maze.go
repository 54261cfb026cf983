package world

import (
	"math/rand"

	"gridmind/internal/grid"
	"gridmind/internal/logging"
)

// PelletScore is awarded for every pellet the target eats.
const PelletScore = 10

// MazeOptions configure a maze episode.
type MazeOptions struct {
	PelletDensity float64 // fraction of free tiles seeded with a pellet
	SightRadius   int     // ghost line of sight per cardinal direction
	Lives         int
}

// DefaultMazeOptions returns the shipped game settings.
func DefaultMazeOptions() MazeOptions {
	return MazeOptions{PelletDensity: 0.6, SightRadius: 5, Lives: 2}
}

// Maze is the ground truth of one maze episode. The target is blocked by
// walls, bounds and ghost spawns; ghosts only by walls and bounds.
type Maze struct {
	layout  Layout
	opts    MazeOptions
	pellets grid.Set
	target  grid.Coord
	ghosts  map[string]grid.Coord

	tick     int
	score    int
	lives    int
	captures int
	victory  bool
	gameOver bool
}

// NewMaze seeds pellets on the free tiles of l, never on the target start or
// a spawn, and places every actor on its start tile.
func NewMaze(l Layout, rng *rand.Rand, o MazeOptions) *Maze {
	var free []grid.Coord
	for y := 0; y < l.H; y++ {
		for x := 0; x < l.W; x++ {
			c := grid.C(x, y)
			if l.Walls.Has(c) || c == l.TargetStart || l.IsSpawn(c) {
				continue
			}
			free = append(free, c)
		}
	}
	n := int(o.PelletDensity * float64(len(free)))
	if n < 1 {
		n = 1
	}
	if n > len(free) {
		n = len(free)
	}
	pellets := grid.NewSet()
	for _, i := range rng.Perm(len(free))[:n] {
		pellets.Add(free[i])
	}

	m := &Maze{
		layout:  l,
		opts:    o,
		pellets: pellets,
		target:  l.TargetStart,
		ghosts:  make(map[string]grid.Coord, len(l.Spawns)),
		lives:   o.Lives,
	}
	for id, c := range l.Spawns {
		m.ghosts[id] = c
	}
	logging.World("maze %dx%d seeded with %d pellets", l.W, l.H, len(pellets))
	return m
}

func (m *Maze) Layout() Layout     { return m.layout }
func (m *Maze) Tick() int          { return m.tick }
func (m *Maze) Score() int         { return m.score }
func (m *Maze) Lives() int         { return m.lives }
func (m *Maze) Captures() int      { return m.captures }
func (m *Maze) Victory() bool      { return m.victory }
func (m *Maze) GameOver() bool     { return m.gameOver }
func (m *Maze) Target() grid.Coord { return m.target }
func (m *Maze) PelletCount() int   { return len(m.pellets) }
func (m *Maze) GhostIDs() []string { return m.layout.GhostIDs() }
func (m *Maze) SightRadius() int   { return m.opts.SightRadius }
func (m *Maze) Done() bool         { return m.victory || m.gameOver }

// IsWall reports whether c is a wall.
func (m *Maze) IsWall(c grid.Coord) bool { return m.layout.Walls.Has(c) }

// Ghost returns the position of ghost id.
func (m *Maze) Ghost(id string) (grid.Coord, bool) {
	c, ok := m.ghosts[id]
	return c, ok
}

// HasPellet reports whether a pellet lies at c.
func (m *Maze) HasPellet(c grid.Coord) bool {
	return m.pellets.Has(c)
}

// Pellets returns the remaining pellets row-major.
func (m *Maze) Pellets() []grid.Coord {
	return m.pellets.Sorted()
}

// TargetBlocked reports whether the target may not enter c.
func (m *Maze) TargetBlocked(c grid.Coord) bool {
	return !m.layout.InBounds(c) || m.layout.Walls.Has(c) || m.layout.IsSpawn(c)
}

// GhostBlocked reports whether a ghost may not enter c.
func (m *Maze) GhostBlocked(c grid.Coord) bool {
	return !m.layout.InBounds(c) || m.layout.Walls.Has(c)
}

// Step advances the episode by one tick with the target's move. Rejected
// moves leave the target in place. Eating, capture, victory and game over
// are resolved here. A finished episode ignores further steps.
func (m *Maze) Step(a grid.Action) {
	if m.Done() {
		return
	}
	m.tick++

	if a.IsMove() {
		if next := m.target.Add(a.Delta()); !m.TargetBlocked(next) {
			m.target = next
		}
	}
	if m.pellets.Has(m.target) {
		m.pellets.Delete(m.target)
		m.score += PelletScore
	}
	m.resolveCapture()

	if len(m.pellets) == 0 {
		m.victory = true
		logging.World("tick %d: all pellets eaten, score %d", m.tick, m.score)
	}
}

// MoveGhost moves ghost id one step. It reports whether the ghost moved.
// A ghost stepping onto the target captures it.
func (m *Maze) MoveGhost(id string, a grid.Action) bool {
	cur, ok := m.ghosts[id]
	if !ok || m.Done() || !a.IsMove() {
		return false
	}
	next := cur.Add(a.Delta())
	if m.GhostBlocked(next) {
		logging.WorldDebug("ghost %s bumped at %s", id, next)
		return false
	}
	m.ghosts[id] = next
	m.resolveCapture()
	return true
}

// resolveCapture costs a life when a ghost shares the target's tile and
// sends every ghost back to its spawn.
func (m *Maze) resolveCapture() {
	caught := false
	for _, c := range m.ghosts {
		if c == m.target {
			caught = true
			break
		}
	}
	if !caught {
		return
	}
	m.lives--
	m.captures++
	for id, c := range m.layout.Spawns {
		m.ghosts[id] = c
	}
	logging.World("tick %d: target captured, %d lives left", m.tick, m.lives)
	if m.lives < 0 {
		m.gameOver = true
		logging.World("tick %d: game over, score %d", m.tick, m.score)
	}
}
