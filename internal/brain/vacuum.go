package brain

import (
	"math/rand"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logging"
	"gridmind/internal/logic"
	"gridmind/internal/perception"
)

// Vacuum is the reactive cleaner: clean dirt underfoot, otherwise wander to
// a random cardinal neighbour not believed blocked.
type Vacuum struct {
	rng *rand.Rand
}

// NewVacuum returns a reactive cleaner drawing choices from rng.
func NewVacuum(rng *rand.Rand) *Vacuum {
	return &Vacuum{rng: rng}
}

func (v *Vacuum) Archetype() Archetype   { return ArchetypeVacuum }
func (v *Vacuum) KBOptions() []kb.Option { return nil }

func (v *Vacuum) Tell(k *kb.KB, s perception.Snapshot) {
	perception.TellVacuum(k, s)
}

func (v *Vacuum) Ask(k *kb.KB) grid.Action {
	X, Y := logic.Var("X"), logic.Var("Y")
	pos := k.Query(logic.Position(X, Y))
	if len(pos) == 0 {
		return grid.Wait
	}
	self := grid.C(pos[0].Int(X), pos[0].Int(Y))

	if k.IsAt(logic.KindDirtAt, self) {
		k.RetractAt(logic.KindDirtAt, self)
		logging.BrainDebug("[%s] vacuum at %s", k.Owner(), self)
		return grid.Vacuum
	}

	var options []grid.Action
	for _, a := range grid.Cardinals() {
		if !k.IsAt(logic.KindBlocked, self.Add(a.Delta())) {
			options = append(options, a)
		}
	}
	if len(options) == 0 {
		return grid.Wait
	}
	return options[v.rng.Intn(len(options))]
}
