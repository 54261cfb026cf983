// Package kb implements the per-agent fact store: a set of ground predicates
// with functional keys, wall/safe exclusion, age-based collection of
// timestamped facts and a scratch plan that is never queried.
package kb

import (
	"sort"

	"gridmind/internal/logging"
	"gridmind/internal/logic"
)

// DefaultTTL is how many ticks a timestamped fact survives when no
// per-agent override is given.
var DefaultTTL = map[logic.Kind]int{
	logic.KindClue:            25,
	logic.KindVisitedAt:       8,
	logic.KindEscape:          6,
	logic.KindUnreachable:     15,
	logic.KindJunctionVisited: 200,
	logic.KindLoiter:          4,
}

// KB is one agent's belief store. It is not safe for concurrent use; each
// agent owns its KB exclusively.
type KB struct {
	owner  string
	byKind map[logic.Kind]map[logic.Predicate]struct{}
	ttl    map[logic.Kind]int
	clock  int
	plan   Plan
}

// Option configures a KB.
type Option func(*KB)

// WithTTL overrides the lifetime of a timestamped kind.
func WithTTL(kind logic.Kind, ticks int) Option {
	return func(k *KB) {
		if _, ok := kind.StampArg(); ok {
			k.ttl[kind] = ticks
		}
	}
}

// New creates an empty KB owned by the named agent.
func New(owner string, opts ...Option) *KB {
	k := &KB{
		owner:  owner,
		byKind: make(map[logic.Kind]map[logic.Predicate]struct{}),
		ttl:    make(map[logic.Kind]int, len(DefaultTTL)),
	}
	for kind, ticks := range DefaultTTL {
		k.ttl[kind] = ticks
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Owner returns the agent identifier this KB belongs to.
func (k *KB) Owner() string {
	return k.owner
}

// Assert stores a ground fact. Non-ground facts are ignored. Functional kinds
// first drop every stored fact with the same key; wall and safe exclude each
// other at the same tile. It reports whether the fact was newly added.
func (k *KB) Assert(p logic.Predicate) bool {
	if !p.IsGround() {
		logging.KBDebug("[%s] ignored non-ground assert %s", k.owner, p)
		return false
	}
	bucket := k.bucket(p.Kind())
	if _, ok := bucket[p]; ok {
		return false
	}

	if p.Kind().Functional() {
		for old := range bucket {
			if old.SameKey(p) {
				delete(bucket, old)
			}
		}
	}

	switch p.Kind() {
	case logic.KindWall:
		delete(k.byKind[logic.KindSafe], logic.Safe(p.Arg(0), p.Arg(1)))
		delete(k.byKind[logic.KindJunction], logic.Junction(p.Arg(0), p.Arg(1)))
		delete(k.byKind[logic.KindTunnel], logic.Tunnel(p.Arg(0), p.Arg(1)))
	case logic.KindSafe:
		delete(k.byKind[logic.KindWall], logic.Wall(p.Arg(0), p.Arg(1)))
	}

	bucket[p] = struct{}{}
	return true
}

// Retract removes every fact that unifies with pattern and returns how many
// were removed.
func (k *KB) Retract(pattern logic.Predicate) int {
	bucket := k.byKind[pattern.Kind()]
	n := 0
	for f := range bucket {
		if logic.Matches(pattern, f) {
			delete(bucket, f)
			n++
		}
	}
	return n
}

// Query returns one substitution per stored fact that unifies with pattern,
// in the stable fact order.
func (k *KB) Query(pattern logic.Predicate) []logic.Substitution {
	var out []logic.Substitution
	for _, f := range k.Facts(pattern.Kind()) {
		if sub, ok := logic.Unify(pattern, f); ok {
			out = append(out, sub)
		}
	}
	return out
}

// Match returns the stored facts that unify with pattern, in stable order.
func (k *KB) Match(pattern logic.Predicate) []logic.Predicate {
	var out []logic.Predicate
	for _, f := range k.Facts(pattern.Kind()) {
		if logic.Matches(pattern, f) {
			out = append(out, f)
		}
	}
	return out
}

// First returns the first fact in stable order that unifies with pattern.
func (k *KB) First(pattern logic.Predicate) (logic.Predicate, bool) {
	m := k.Match(pattern)
	if len(m) == 0 {
		return logic.Predicate{}, false
	}
	return m[0], true
}

// Exists reports whether any stored fact unifies with pattern.
func (k *KB) Exists(pattern logic.Predicate) bool {
	if pattern.IsGround() {
		return k.Holds(pattern)
	}
	for f := range k.byKind[pattern.Kind()] {
		if logic.Matches(pattern, f) {
			return true
		}
	}
	return false
}

// Holds reports whether the ground fact is stored.
func (k *KB) Holds(p logic.Predicate) bool {
	_, ok := k.byKind[p.Kind()][p]
	return ok
}

// Facts returns every stored fact of kind, sorted.
func (k *KB) Facts(kind logic.Kind) []logic.Predicate {
	bucket := k.byKind[kind]
	out := make([]logic.Predicate, 0, len(bucket))
	for f := range bucket {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// All returns every stored fact, sorted by kind then arguments.
func (k *KB) All() []logic.Predicate {
	var out []logic.Predicate
	for _, kind := range logic.Kinds() {
		out = append(out, k.Facts(kind)...)
	}
	return out
}

// Count returns the number of facts of kind.
func (k *KB) Count(kind logic.Kind) int {
	return len(k.byKind[kind])
}

// Len returns the total number of stored facts.
func (k *KB) Len() int {
	n := 0
	for _, bucket := range k.byKind {
		n += len(bucket)
	}
	return n
}

func (k *KB) bucket(kind logic.Kind) map[logic.Predicate]struct{} {
	b, ok := k.byKind[kind]
	if !ok {
		b = make(map[logic.Predicate]struct{})
		k.byKind[kind] = b
	}
	return b
}
