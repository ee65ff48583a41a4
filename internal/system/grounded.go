package system

import (
	"cube-combine/internal/component"
	"cube-combine/internal/ecs"
	"cube-combine/internal/physics"
)

// TrackGrounded marks a player grounded when its foot sensor starts touching
// anything. Only Begin events are consulted: nothing here ever clears the
// flag, that is left to the jump. Events whose sensor has no parent, or whose
// parent has no Grounded component, are skipped.
//
// It returns the players whose flag went from false to true in this frame.
func TrackGrounded(w *ecs.World, frame physics.Frame) []ecs.EntityID {
	var landed []ecs.EntityID
	for ev := range frame.All() {
		if ev.Kind != physics.Begin {
			continue
		}
		for _, side := range [2]ecs.EntityID{ev.A, ev.B} {
			if !w.Has(side, component.CTagGroundCheck) {
				continue
			}
			p := w.Get(side, component.CParent)
			if p == nil {
				continue
			}
			owner := p.(component.Parent).ID
			g := w.Get(owner, component.CGrounded)
			if g == nil {
				continue
			}
			if !g.(component.Grounded).Value {
				landed = append(landed, owner)
			}
			w.Add(owner, component.Grounded{Value: true})
		}
	}
	return landed
}
