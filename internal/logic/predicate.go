package logic

import (
	"strings"
)

// MaxArity bounds predicate arguments so Predicate stays comparable.
const MaxArity = 3

// Predicate is a kind-tagged tuple of terms. Two predicates are equal iff
// they have the same kind and the same arguments, so Predicate is usable as
// a map key directly.
type Predicate struct {
	kind Kind
	args [MaxArity]Term
}

// New builds a predicate of the given kind. Missing arguments are left as
// the zero Term and extra arguments are dropped; callers use the typed
// constructors below in production code.
func New(kind Kind, args ...Term) Predicate {
	p := Predicate{kind: kind}
	n := kind.Arity()
	for i := 0; i < n && i < len(args); i++ {
		p.args[i] = args[i]
	}
	return p
}

// Kind returns the predicate tag.
func (p Predicate) Kind() Kind {
	return p.kind
}

// Arity returns the number of arguments.
func (p Predicate) Arity() int {
	return p.kind.Arity()
}

// Arg returns argument i. Out-of-range indexes return the zero Term.
func (p Predicate) Arg(i int) Term {
	if i < 0 || i >= p.kind.Arity() {
		return Term{}
	}
	return p.args[i]
}

// Args returns a copy of the arguments.
func (p Predicate) Args() []Term {
	n := p.kind.Arity()
	out := make([]Term, n)
	copy(out, p.args[:n])
	return out
}

// IsGround reports whether every argument is a constant.
func (p Predicate) IsGround() bool {
	if p.kind == KindInvalid || p.kind >= kindCount {
		return false
	}
	for i := 0; i < p.kind.Arity(); i++ {
		if !p.args[i].IsConstant() {
			return false
		}
	}
	return true
}

// XY returns the first two arguments as integers. ok is false when either is
// not an integer constant.
func (p Predicate) XY() (x, y int, ok bool) {
	a, b := p.Arg(0), p.Arg(1)
	if !a.IsInt() || !b.IsInt() {
		return 0, 0, false
	}
	return a.IntValue(), b.IntValue(), true
}

// Stamp returns the tick argument of a timestamped predicate.
func (p Predicate) Stamp() (int, bool) {
	i, ok := p.kind.StampArg()
	if !ok || !p.args[i].IsInt() {
		return 0, false
	}
	return p.args[i].IntValue(), true
}

// SameKey reports whether q occupies the same functional slot as p.
func (p Predicate) SameKey(q Predicate) bool {
	if p.kind != q.kind || !p.kind.Functional() {
		return false
	}
	for i := 0; i < p.kind.KeyArgs(); i++ {
		if p.args[i] != q.args[i] {
			return false
		}
	}
	return true
}

// Less gives a total order over predicates: by kind, then argument by argument.
func (p Predicate) Less(q Predicate) bool {
	if p.kind != q.kind {
		return p.kind < q.kind
	}
	for i := 0; i < MaxArity; i++ {
		if p.args[i] != q.args[i] {
			return p.args[i].less(q.args[i])
		}
	}
	return false
}

// String renders the predicate as a Datalog fact or query atom.
func (p Predicate) String() string {
	var sb strings.Builder
	sb.WriteString(p.kind.String())
	sb.WriteString("(")
	for i := 0; i < p.kind.Arity(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.args[i].String())
	}
	sb.WriteString(")")
	if p.IsGround() {
		sb.WriteString(".")
	}
	return sb.String()
}

// Location-based constructors.

func Position(x, y Term) Predicate   { return New(KindPosition, x, y) }
func DirtAt(x, y Term) Predicate     { return New(KindDirtAt, x, y) }
func Blocked(x, y Term) Predicate    { return New(KindBlocked, x, y) }
func Wall(x, y Term) Predicate       { return New(KindWall, x, y) }
func Safe(x, y Term) Predicate       { return New(KindSafe, x, y) }
func Junction(x, y Term) Predicate   { return New(KindJunction, x, y) }
func Tunnel(x, y Term) Predicate     { return New(KindTunnel, x, y) }
func PelletSeen(x, y Term) Predicate { return New(KindPelletSeen, x, y) }
func TargetSeen(x, y Term) Predicate { return New(KindTargetSeen, x, y) }
func TargetLast(x, y Term) Predicate { return New(KindTargetLast, x, y) }

// Belief constructors.

func TargetVector(dx, dy Term) Predicate     { return New(KindTargetVector, dx, dy) }
func AgentPos(id, x, y Term) Predicate       { return New(KindAgentPos, id, x, y) }
func RegionPellets(region, n Term) Predicate { return New(KindRegionPellets, region, n) }
func Mode(m Term) Predicate                  { return New(KindMode, m) }
func Heading(dx, dy Term) Predicate          { return New(KindHeading, dx, dy) }
func Momentum(dx, dy Term) Predicate         { return New(KindMomentum, dx, dy) }
func Clue(x, y, t Term) Predicate            { return New(KindClue, x, y, t) }
func VisitedAt(x, y, t Term) Predicate       { return New(KindVisitedAt, x, y, t) }
func Escape(x, y, t Term) Predicate          { return New(KindEscape, x, y, t) }
func Unreachable(x, y, t Term) Predicate     { return New(KindUnreachable, x, y, t) }
func JunctionVisited(x, y, t Term) Predicate { return New(KindJunctionVisited, x, y, t) }
func Loiter(x, y, t Term) Predicate          { return New(KindLoiter, x, y, t) }

// At is shorthand for a ground location predicate at integer coordinates.
func At(kind Kind, x, y int) Predicate {
	return New(kind, Int(x), Int(y))
}
