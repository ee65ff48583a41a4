// Package physics advances rigid bodies and reports collision transitions.
// Each step yields a Frame: an immutable, ordered snapshot of the Begin/End
// events of that step which any number of consumers may iterate.
package physics

import (
	"fmt"
	"iter"

	"cube-combine/internal/ecs"
)

// Kind is the direction of a collision transition.
type Kind uint8

const (
	Begin Kind = iota // two volumes started touching
	End               // two volumes stopped touching
)

func (k Kind) String() string {
	if k == Begin {
		return "begin"
	}
	return "end"
}

// Event names an unordered pair of entities whose contact state changed.
type Event struct {
	Kind Kind
	A, B ecs.EntityID
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d,%d)", e.Kind, e.A, e.B)
}

// Other returns the side that is not id. ok is false when id is not in the pair.
func (e Event) Other(id ecs.EntityID) (ecs.EntityID, bool) {
	switch id {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	}
	return ecs.NilEntity, false
}

// Frame is the read-only event snapshot of one physics step.
type Frame struct {
	events []Event
}

// NewFrame copies events into a new Frame.
func NewFrame(events ...Event) Frame {
	if len(events) == 0 {
		return Frame{}
	}
	return Frame{events: append([]Event(nil), events...)}
}

// Len returns the number of events in the frame.
func (f Frame) Len() int { return len(f.events) }

// At returns the i-th event in emission order.
func (f Frame) At(i int) Event { return f.events[i] }

// All yields every event in emission order. Iterating does not consume.
func (f Frame) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, e := range f.events {
			if !yield(e) {
				return
			}
		}
	}
}
