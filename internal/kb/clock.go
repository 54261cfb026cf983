package kb

import (
	"gridmind/internal/logging"
	"gridmind/internal/logic"
)

// SetClock advances the KB's notion of the current tick.
func (k *KB) SetClock(tick int) {
	k.clock = tick
}

// Clock returns the tick last passed to SetClock.
func (k *KB) Clock() int {
	return k.clock
}

// TTL returns the lifetime of a timestamped kind.
func (k *KB) TTL(kind logic.Kind) (int, bool) {
	t, ok := k.ttl[kind]
	return t, ok
}

// Age returns how many ticks ago a timestamped fact was stamped.
func (k *KB) Age(p logic.Predicate) (int, bool) {
	stamp, ok := p.Stamp()
	if !ok {
		return 0, false
	}
	return k.clock - stamp, true
}

// Collect drops every timestamped fact whose age has reached its kind's TTL
// and returns how many were dropped. Perception calls it at the start of
// every TELL.
func (k *KB) Collect() int {
	dropped := 0
	for kind, ttl := range k.ttl {
		bucket := k.byKind[kind]
		for f := range bucket {
			if age, ok := k.Age(f); ok && age >= ttl {
				delete(bucket, f)
				dropped++
			}
		}
	}
	if dropped > 0 {
		logging.KBDebug("[%s] collected %d expired facts at tick %d", k.owner, dropped, k.clock)
	}
	return dropped
}
