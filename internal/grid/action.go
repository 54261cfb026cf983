package grid

// Action is what an agent hands back to its environment each tick.
type Action uint8

const (
	Wait Action = iota
	Up
	Down
	Left
	Right
	Vacuum
)

var actionNames = [...]string{
	Wait:   "WAIT",
	Up:     "UP",
	Down:   "DOWN",
	Left:   "LEFT",
	Right:  "RIGHT",
	Vacuum: "VACUUM",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "UNKNOWN"
}

// ParseAction resolves an action name.
func ParseAction(s string) (Action, bool) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), true
		}
	}
	return Wait, false
}

// Cardinals returns the four moves in a fixed order.
func Cardinals() []Action {
	return []Action{Up, Down, Left, Right}
}

// Delta returns the displacement of a move. Wait and Vacuum do not move.
func (a Action) Delta() Coord {
	switch a {
	case Up:
		return Coord{0, -1}
	case Down:
		return Coord{0, 1}
	case Left:
		return Coord{-1, 0}
	case Right:
		return Coord{1, 0}
	}
	return Coord{}
}

// IsMove reports whether a is one of the four cardinal moves.
func (a Action) IsMove() bool {
	return a >= Up && a <= Right
}

// Reverse returns the opposite move.
func (a Action) Reverse() Action {
	switch a {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return a
}

// ActionFor maps a unit displacement to its move.
func ActionFor(d Coord) (Action, bool) {
	for _, a := range Cardinals() {
		if a.Delta() == d {
			return a, true
		}
	}
	return Wait, false
}

// Toward returns the move from c onto the adjacent tile next.
func Toward(c, next Coord) (Action, bool) {
	return ActionFor(next.Sub(c))
}
