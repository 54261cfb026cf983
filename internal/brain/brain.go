// Package brain holds the goal-inference rule sets. A Brain reads and writes
// only the knowledge base it is handed; all per-agent memory lives there as
// facts or in the KB's scratch plan.
package brain

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/perception"
)

// ErrUnknownArchetype is returned by New for an unrecognised archetype name.
var ErrUnknownArchetype = errors.New("unknown archetype")

// Archetype names a behavioural rule set.
type Archetype uint8

const (
	ArchetypeVacuum Archetype = iota
	ArchetypePursuer
	ArchetypeAnalyst
	ArchetypeCoordinator
)

var archetypeNames = [...]string{
	ArchetypeVacuum:      "vacuum",
	ArchetypePursuer:     "pursuer",
	ArchetypeAnalyst:     "analyst",
	ArchetypeCoordinator: "coordinator",
}

func (a Archetype) String() string {
	if int(a) < len(archetypeNames) {
		return archetypeNames[a]
	}
	return "unknown"
}

// ParseArchetype resolves a name case-insensitively.
func ParseArchetype(s string) (Archetype, error) {
	for i, name := range archetypeNames {
		if strings.EqualFold(name, s) {
			return Archetype(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArchetype, s)
}

// Brain is one archetype's TELL/ASK rule set.
type Brain interface {
	Archetype() Archetype
	// KBOptions configures the KB the brain expects, such as fact lifetimes.
	KBOptions() []kb.Option
	// Tell ingests percepts and runs state transitions.
	Tell(k *kb.KB, s perception.Snapshot)
	// Ask selects one action from the KB alone.
	Ask(k *kb.KB) grid.Action
}

// New builds the brain for an archetype. Every brain gets its own rng.
func New(a Archetype, rng *rand.Rand, p Params) (Brain, error) {
	switch a {
	case ArchetypeVacuum:
		return NewVacuum(rng), nil
	case ArchetypePursuer:
		return NewPursuer(rng), nil
	case ArchetypeAnalyst:
		return NewAnalyst(rng, p.Analyst), nil
	case ArchetypeCoordinator:
		return NewCoordinator(rng, p.Coordinator), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownArchetype, a)
}

// Shell runs TELL then ASK for one agent each tick.
type Shell struct {
	ID    string
	KB    *kb.KB
	Brain Brain
}

// NewShell creates an agent with a fresh KB configured for b.
func NewShell(id string, b Brain) *Shell {
	return &Shell{ID: id, KB: kb.New(id, b.KBOptions()...), Brain: b}
}

// Step tells the snapshot and asks for the next action.
func (s *Shell) Step(snap perception.Snapshot) grid.Action {
	s.Brain.Tell(s.KB, snap)
	return s.Brain.Ask(s.KB)
}
