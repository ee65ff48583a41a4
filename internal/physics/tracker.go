package physics

import (
	"sort"

	"cube-combine/internal/ecs"
)

// pairKey is an unordered entity pair stored with the lower ID first.
type pairKey struct {
	lo, hi ecs.EntityID
}

func makePair(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

func (k pairKey) less(o pairKey) bool {
	if k.lo != o.lo {
		return k.lo < o.lo
	}
	return k.hi < o.hi
}

// contactTracker remembers which pairs touched at the end of the previous
// step so a new set of touching pairs can be turned into transitions.
type contactTracker struct {
	active map[pairKey]bool
}

func newContactTracker() *contactTracker {
	return &contactTracker{active: make(map[pairKey]bool)}
}

// diff replaces the active set with touching and returns the transitions.
// Pairs that lost a member come first, then the remaining transitions, each
// group sorted by pair so the output is deterministic.
func (t *contactTracker) diff(w *ecs.World, touching map[pairKey]bool) []Event {
	var vanished, changed []pairKey
	for k := range t.active {
		if touching[k] {
			continue
		}
		if !w.Alive(k.lo) || !w.Alive(k.hi) {
			vanished = append(vanished, k)
		} else {
			changed = append(changed, k)
		}
	}
	for k := range touching {
		if !t.active[k] {
			changed = append(changed, k)
		}
	}
	sortPairs(vanished)
	sortPairs(changed)

	events := make([]Event, 0, len(vanished)+len(changed))
	for _, k := range vanished {
		events = append(events, Event{Kind: End, A: k.lo, B: k.hi})
	}
	for _, k := range changed {
		kind := Begin
		if t.active[k] {
			kind = End
		}
		events = append(events, Event{Kind: kind, A: k.lo, B: k.hi})
	}
	t.active = touching
	return events
}

// touching reports whether the pair is currently in contact.
func (t *contactTracker) touching(a, b ecs.EntityID) bool {
	return t.active[makePair(a, b)]
}

func sortPairs(keys []pairKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
}
