package brain

// Params groups the per-archetype tuning.
type Params struct {
	Analyst     AnalystParams
	Coordinator CoordinatorParams
}

// DefaultParams returns the tuned values the game ships with.
func DefaultParams() Params {
	return Params{
		Analyst:     DefaultAnalystParams(),
		Coordinator: DefaultCoordinatorParams(),
	}
}

// AnalystParams tune the ambush/explore cascade.
type AnalystParams struct {
	ClueTTL        int // ticks a clue stays believable
	MaxClues       int
	ClueAgeWeight  int // clue score = distance + weight * age
	AmbushRadius   int // max Manhattan distance from clue to an ambush junction
	JunctionMemory int // visited-junction FIFO size
	FarJunction    int // patrol prefers junctions strictly farther than this
	LoiterTicks    int
}

// CoordinatorParams tune the formal multi-predicate cascade.
type CoordinatorParams struct {
	ClueTTL           int
	MaxClues          int
	EscapeTicks       int // lifetime of an escape commitment
	UnreachableTicks  int // how long an unreachable goal stays excluded
	FleeRadius        int // other agents closer than this trigger repulsion
	ChaseDistance     int // close band
	InterceptDistance int // medium band
	Lookahead         int // projection steps for intercept
	SpreadDistance    int // minimum distance for the spread goal
	MaxRetries        int // reselections after an unreachable goal
	BoardW, BoardH    int // region model bounds
}

// DefaultAnalystParams returns the shipped analyst tuning.
func DefaultAnalystParams() AnalystParams {
	return AnalystParams{
		ClueTTL:        25,
		MaxClues:       2,
		ClueAgeWeight:  2,
		AmbushRadius:   4,
		JunctionMemory: 12,
		FarJunction:    5,
		LoiterTicks:    4,
	}
}

// DefaultCoordinatorParams returns the shipped coordinator tuning.
func DefaultCoordinatorParams() CoordinatorParams {
	return CoordinatorParams{
		ClueTTL:           20,
		MaxClues:          2,
		EscapeTicks:       6,
		UnreachableTicks:  15,
		FleeRadius:        3,
		ChaseDistance:     5,
		InterceptDistance: 10,
		Lookahead:         4,
		SpreadDistance:    6,
		MaxRetries:        3,
		BoardW:            25,
		BoardH:            10,
	}
}
