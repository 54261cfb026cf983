package logic

// Kind tags a predicate. The set of kinds is closed: unification and storage
// switch on it instead of inspecting Go types.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Location-based kinds: Kind(x, y).
	KindPosition   // current position of the owning agent (functional)
	KindDirtAt     // dirt believed at (x, y)
	KindBlocked    // (x, y) reported blocked by the environment
	KindWall       // learned wall
	KindSafe       // learned walkable tile
	KindJunction   // safe tile with three or more open neighbours
	KindTunnel     // safe tile with exactly two open neighbours
	KindPelletSeen // pellet believed at (x, y)
	KindTargetSeen // target in direct sight this tick (functional)
	KindTargetLast // last position the target was seen at (functional)

	// Belief kinds with extra structure.
	KindTargetVector  // (dx, dy) last non-zero displacement of the target (functional)
	KindAgentPos      // (id, x, y) another agent in sight this tick (functional per id)
	KindRegionPellets // (region, n) believed pellets per region (functional per region)
	KindMode          // (mode) pursuer state (functional)
	KindHeading       // (dx, dy) investigation heading (functional)
	KindMomentum      // (dx, dy) last patrol move (functional)

	// Timestamped kinds: the last argument is a tick.
	KindClue            // (x, y, t) target inferred at (x, y) at tick t
	KindVisitedAt       // (x, y, t) own position history
	KindEscape          // (x, y, t) commitment to flee to (x, y) started at t (functional)
	KindUnreachable     // (x, y, t) goal proven unreachable at t
	KindJunctionVisited // (x, y, t) junction patrolled at t
	KindLoiter          // (x, y, t) camping around anchor (x, y) since tick t (functional)

	kindCount
)

type kindInfo struct {
	name string
	// arity is the number of arguments.
	arity int
	// key is the number of leading arguments that identify a functional
	// fact. -1 marks a non-functional kind; 0 means one fact per kind.
	key int
	// stamp is the index of the tick argument, or -1.
	stamp int
	// location marks the (x, y) family.
	location bool
}

var kinds = [kindCount]kindInfo{
	KindInvalid:    {name: "invalid", key: -1, stamp: -1},
	KindPosition:   {name: "position", arity: 2, key: 0, stamp: -1, location: true},
	KindDirtAt:     {name: "dirt_at", arity: 2, key: -1, stamp: -1, location: true},
	KindBlocked:    {name: "blocked", arity: 2, key: -1, stamp: -1, location: true},
	KindWall:       {name: "wall", arity: 2, key: -1, stamp: -1, location: true},
	KindSafe:       {name: "safe", arity: 2, key: -1, stamp: -1, location: true},
	KindJunction:   {name: "junction", arity: 2, key: -1, stamp: -1, location: true},
	KindTunnel:     {name: "tunnel", arity: 2, key: -1, stamp: -1, location: true},
	KindPelletSeen: {name: "pellet_seen", arity: 2, key: -1, stamp: -1, location: true},
	KindTargetSeen: {name: "target_seen", arity: 2, key: 0, stamp: -1, location: true},
	KindTargetLast: {name: "target_last", arity: 2, key: 0, stamp: -1, location: true},

	KindTargetVector:  {name: "target_vector", arity: 2, key: 0, stamp: -1},
	KindAgentPos:      {name: "agent_pos", arity: 3, key: 1, stamp: -1},
	KindRegionPellets: {name: "region_pellets", arity: 2, key: 1, stamp: -1},
	KindMode:          {name: "mode", arity: 1, key: 0, stamp: -1},
	KindHeading:       {name: "heading", arity: 2, key: 0, stamp: -1},
	KindMomentum:      {name: "momentum", arity: 2, key: 0, stamp: -1},

	KindClue:            {name: "clue", arity: 3, key: -1, stamp: 2},
	KindVisitedAt:       {name: "visited_at", arity: 3, key: -1, stamp: 2},
	KindEscape:          {name: "escape", arity: 3, key: 0, stamp: 2},
	KindUnreachable:     {name: "unreachable", arity: 3, key: 2, stamp: 2},
	KindJunctionVisited: {name: "junction_visited", arity: 3, key: 2, stamp: 2},
	KindLoiter:          {name: "loiter", arity: 3, key: 0, stamp: 2},
}

func (k Kind) info() kindInfo {
	if k >= kindCount {
		return kinds[KindInvalid]
	}
	return kinds[k]
}

// String returns the Datalog predicate name.
func (k Kind) String() string {
	return k.info().name
}

// Arity returns the number of arguments a predicate of this kind carries.
func (k Kind) Arity() int {
	return k.info().arity
}

// Functional reports whether at most one fact per key may be stored.
func (k Kind) Functional() bool {
	return k.info().key >= 0
}

// KeyArgs returns how many leading arguments form the functional key.
func (k Kind) KeyArgs() int {
	return k.info().key
}

// StampArg returns the index of the tick argument and whether there is one.
func (k Kind) StampArg() (int, bool) {
	i := k.info().stamp
	return i, i >= 0
}

// LocationBased reports whether the kind belongs to the (x, y) family.
func (k Kind) LocationBased() bool {
	return k.info().location
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindByName resolves a Datalog predicate name.
func KindByName(name string) (Kind, bool) {
	for k := KindInvalid + 1; k < kindCount; k++ {
		if kinds[k].name == name {
			return k, true
		}
	}
	return KindInvalid, false
}
