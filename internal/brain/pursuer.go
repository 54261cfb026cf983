package brain

import (
	"math/rand"

	"gridmind/internal/grid"
	"gridmind/internal/kb"
	"gridmind/internal/logging"
	"gridmind/internal/logic"
	"gridmind/internal/perception"
)

// Pursuer modes.
const (
	ModePatrol      = "PATROL"
	ModeChase       = "CHASE"
	ModePursue      = "PURSUE"
	ModeInvestigate = "INVESTIGATE"
)

// Pursuer is the four-state machine. Its mode is stored in the KB as a
// functional mode/1 fact; transitions run during TELL and ASK only reads.
type Pursuer struct {
	rng *rand.Rand
}

// NewPursuer returns a pursuer drawing choices from rng.
func NewPursuer(rng *rand.Rand) *Pursuer {
	return &Pursuer{rng: rng}
}

func (p *Pursuer) Archetype() Archetype   { return ArchetypePursuer }
func (p *Pursuer) KBOptions() []kb.Option { return nil }

// Mode returns the pursuer mode recorded in k, PATROL when none is.
func Mode(k *kb.KB) string {
	subs := k.Query(logic.Mode(logic.Var("M")))
	if len(subs) == 0 {
		return ModePatrol
	}
	return subs[0].Sym(logic.Var("M"))
}

func setMode(k *kb.KB, mode string) {
	prev := Mode(k)
	k.Assert(logic.Mode(logic.Sym(mode)))
	if prev != mode {
		logging.BrainDebug("[%s] %s -> %s", k.Owner(), prev, mode)
	}
}

func (p *Pursuer) Tell(k *kb.KB, s perception.Snapshot) {
	perception.Tell(k, s, perception.Options{})
	self := s.Self

	if _, visible := k.Locate(logic.KindTargetSeen); visible {
		setMode(k, ModeChase)
		return
	}

	switch Mode(k) {
	case ModeChase:
		setMode(k, ModePursue)

	case ModePursue:
		if last, ok := k.Locate(logic.KindTargetLast); ok && last == self {
			rev, has := p.approachReverse(k)
			p.investigate(k, self, rev, has)
		}

	case ModeInvestigate:
		goal, ok := k.Goal()
		switch {
		case !ok || isWall(k, goal):
			setMode(k, ModePatrol)
			k.ClearPlan()
		case goal == self:
			rev, has := p.headingReverse(k)
			p.investigate(k, self, rev, has)
		}

	default:
		setMode(k, ModePatrol)
	}
}

// approachReverse is the move that would backtrack along the target's last
// known direction of travel.
func (p *Pursuer) approachReverse(k *kb.KB) (grid.Action, bool) {
	v, ok := targetVector(k)
	if !ok {
		return grid.Wait, false
	}
	a, ok := vectorAction(v)
	return a.Reverse(), ok
}

func (p *Pursuer) headingReverse(k *kb.KB) (grid.Action, bool) {
	dx, dy := logic.Var("DX"), logic.Var("DY")
	subs := k.Query(logic.Heading(dx, dy))
	if len(subs) == 0 {
		return grid.Wait, false
	}
	a, ok := grid.ActionFor(grid.C(subs[0].Int(dx), subs[0].Int(dy)))
	return a.Reverse(), ok
}

// investigate picks one uncertain direction, excluding the given reverse
// move and any known wall, and commits a one-step goal along it. With no
// candidate the pursuer falls back to PATROL.
func (p *Pursuer) investigate(k *kb.KB, self grid.Coord, exclude grid.Action, hasExclude bool) {
	var options []grid.Action
	for _, a := range grid.Cardinals() {
		if hasExclude && a == exclude {
			continue
		}
		if !isWall(k, self.Add(a.Delta())) {
			options = append(options, a)
		}
	}
	if len(options) == 0 {
		setMode(k, ModePatrol)
		k.ClearPlan()
		return
	}
	a := options[p.rng.Intn(len(options))]
	d := a.Delta()
	k.Assert(logic.Heading(logic.Int(d.X), logic.Int(d.Y)))
	k.SetGoal(self.Add(d))
	setMode(k, ModeInvestigate)
}

func (p *Pursuer) Ask(k *kb.KB) grid.Action {
	self, ok := k.Position()
	if !ok {
		return grid.Wait
	}

	var goal grid.Coord
	switch Mode(k) {
	case ModeChase:
		goal, ok = k.Locate(logic.KindTargetSeen)
	case ModePursue:
		goal, ok = k.Locate(logic.KindTargetLast)
	case ModeInvestigate:
		goal, ok = k.Goal()
	default:
		return p.patrol(k, self)
	}
	if !ok {
		return randomMove(k, p.rng, self, nil)
	}
	k.SetGoal(goal)
	return greedyStep(k, p.rng, self, goal)
}

// patrol keeps the last patrol move while it is open, otherwise turns to a
// random open non-reversing direction and reverses only at dead ends.
func (p *Pursuer) patrol(k *kb.KB, self grid.Coord) grid.Action {
	k.ClearPlan()

	var (
		last    grid.Action
		hasLast bool
	)
	dx, dy := logic.Var("DX"), logic.Var("DY")
	if subs := k.Query(logic.Momentum(dx, dy)); len(subs) > 0 {
		last, hasLast = grid.ActionFor(grid.C(subs[0].Int(dx), subs[0].Int(dy)))
	}

	open := func(a grid.Action) bool { return !isWall(k, self.Add(a.Delta())) }

	choice := grid.Wait
	switch {
	case hasLast && open(last):
		choice = last
	default:
		var options []grid.Action
		for _, a := range grid.Cardinals() {
			if hasLast && a == last.Reverse() {
				continue
			}
			if open(a) {
				options = append(options, a)
			}
		}
		if len(options) > 0 {
			choice = options[p.rng.Intn(len(options))]
		} else if hasLast && open(last.Reverse()) {
			choice = last.Reverse()
		}
	}

	if choice.IsMove() {
		d := choice.Delta()
		k.Assert(logic.Momentum(logic.Int(d.X), logic.Int(d.Y)))
	}
	return choice
}
