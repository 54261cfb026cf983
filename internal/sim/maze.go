// Package sim runs episodes. A maze tick is strictly ordered: the target
// moves and the world resolves eating and captures, then every ghost in ID
// order tells its percepts, asks for a move and moves.
package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"gridmind/internal/brain"
	"gridmind/internal/grid"
	"gridmind/internal/logging"
	"gridmind/internal/world"
)

// Controller chooses the target's move. world.Bot is one; the play UI
// supplies keyboard input through another.
type Controller interface {
	Act(m *world.Maze) grid.Action
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(m *world.Maze) grid.Action

func (f ControllerFunc) Act(m *world.Maze) grid.Action { return f(m) }

// MazeConfig describes one maze episode.
type MazeConfig struct {
	Seed     int64
	Layout   string
	Maze     world.MazeOptions
	MaxTicks int
	Params   brain.Params
	// Ghosts maps a spawn ID to the archetype driving it. Spawns without an
	// entry fall back to the pursuer.
	Ghosts map[string]brain.Archetype
}

// DefaultMazeConfig returns the classic three-ghost game.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Seed:     1,
		Layout:   "classic",
		Maze:     world.DefaultMazeOptions(),
		MaxTicks: 500,
		Params:   brain.DefaultParams(),
		Ghosts: map[string]brain.Archetype{
			"A": brain.ArchetypePursuer,
			"B": brain.ArchetypeAnalyst,
			"C": brain.ArchetypeCoordinator,
		},
	}
}

// Episode is a running maze game.
type Episode struct {
	ID     string
	Seed   int64
	Maze   *world.Maze
	Agents []*brain.Shell

	target   Controller
	maxTicks int
	log      *logging.Logger
}

// NewEpisode builds the world and one agent per spawn. A nil target gets the
// pellet-seeking bot. All randomness derives from cfg.Seed.
func NewEpisode(cfg MazeConfig, target Controller) (*Episode, error) {
	layout, err := world.NamedLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}
	root := rand.New(rand.NewSource(cfg.Seed))
	fork := func() *rand.Rand { return rand.New(rand.NewSource(root.Int63())) }

	e := &Episode{
		ID:       uuid.NewString(),
		Seed:     cfg.Seed,
		Maze:     world.NewMaze(layout, fork(), cfg.Maze),
		maxTicks: cfg.MaxTicks,
	}
	e.log = logging.WithEpisode(logging.CategorySim, e.ID)

	for _, id := range layout.GhostIDs() {
		arch, ok := cfg.Ghosts[id]
		if !ok {
			arch = brain.ArchetypePursuer
		}
		b, err := brain.New(arch, fork(), cfg.Params)
		if err != nil {
			return nil, fmt.Errorf("ghost %s: %w", id, err)
		}
		e.Agents = append(e.Agents, brain.NewShell(id, b))
	}

	if target == nil {
		target = world.NewBot(fork())
	}
	e.target = target
	e.log.Info("episode seed=%d layout=%s ghosts=%d pellets=%d", cfg.Seed, cfg.Layout, len(e.Agents), e.Maze.PelletCount())
	return e, nil
}

// Done reports whether the episode has ended by victory, game over or the
// tick limit.
func (e *Episode) Done() bool {
	return e.Maze.Done() || (e.maxTicks > 0 && e.Maze.Tick() >= e.maxTicks)
}

// Step plays one tick with the episode's target controller.
func (e *Episode) Step() {
	e.StepWith(e.target.Act(e.Maze))
}

// StepWith plays one tick with the given target move.
func (e *Episode) StepWith(a grid.Action) {
	if e.Done() {
		return
	}
	e.Maze.Step(a)
	for _, ag := range e.Agents {
		if e.Maze.Done() {
			return
		}
		snap, ok := e.Maze.Percepts(ag.ID)
		if !ok {
			continue
		}
		act := ag.Step(snap)
		e.Maze.MoveGhost(ag.ID, act)
		e.log.Debug("tick %d ghost %s at %s -> %s", snap.Tick, ag.ID, snap.Self, act)
	}
}

// Result summarises a finished maze episode.
type Result struct {
	ID          string `json:"id"`
	Seed        int64  `json:"seed"`
	Ticks       int    `json:"ticks"`
	Score       int    `json:"score"`
	Lives       int    `json:"lives"`
	Captures    int    `json:"captures"`
	PelletsLeft int    `json:"pellets_left"`
	Outcome     string `json:"outcome"`
}

// Outcomes.
const (
	OutcomeVictory  = "victory"
	OutcomeGameOver = "game_over"
	OutcomeTimeout  = "timeout"
	OutcomeAborted  = "aborted"
)

// Result reports the episode's state.
func (e *Episode) Result() Result {
	r := Result{
		ID:          e.ID,
		Seed:        e.Seed,
		Ticks:       e.Maze.Tick(),
		Score:       e.Maze.Score(),
		Lives:       max(e.Maze.Lives(), 0),
		Captures:    e.Maze.Captures(),
		PelletsLeft: e.Maze.PelletCount(),
		Outcome:     OutcomeAborted,
	}
	switch {
	case e.Maze.Victory():
		r.Outcome = OutcomeVictory
	case e.Maze.GameOver():
		r.Outcome = OutcomeGameOver
	case e.Done():
		r.Outcome = OutcomeTimeout
	}
	return r
}

// RunMaze plays a headless episode to completion. observe, when set, is
// called after every tick. Cancelling ctx stops between ticks.
func RunMaze(ctx context.Context, cfg MazeConfig, observe func(*Episode)) (Result, error) {
	e, err := NewEpisode(cfg, nil)
	if err != nil {
		return Result{}, err
	}
	timer := logging.StartTimer(logging.CategorySim, "maze episode")
	defer timer.Stop()

	for !e.Done() {
		if err := ctx.Err(); err != nil {
			return e.Result(), err
		}
		e.Step()
		if observe != nil {
			observe(e)
		}
	}
	r := e.Result()
	e.log.Info("finished: %s after %d ticks, score %d", r.Outcome, r.Ticks, r.Score)
	return r, nil
}
