package system

import (
	"cube-combine/internal/asset"
	"cube-combine/internal/component"
	"cube-combine/internal/ecs"
	"cube-combine/internal/physics"
)

// Contact is one applied player/combinable transition.
type Contact struct {
	Kind   physics.Kind
	Player ecs.EntityID
	Target ecs.EntityID
}

// TrackInteractions applies the frame's contacts between players and
// combinables, in emission order.
//
// Begin highlights the combinable (if it is not already) and makes it the
// touching player's candidate; with several combinables touched in one frame
// the last one wins. End reverts the combinable to its original material and
// clears the candidate of the player on the other side if it still points
// here. The other side of an End may already be gone; it then counts only if
// it is among the combinable's Touchers.
func TrackInteractions(w *ecs.World, frame physics.Frame, highlight asset.MaterialHandle) []Contact {
	var applied []Contact
	for ev := range frame.All() {
		switch ev.Kind {
		case physics.Begin:
			player, target, ok := playerAndCombinable(w, ev)
			if !ok {
				continue
			}
			comb := w.Get(target, component.CCombinable).(component.Combinable)
			setHighlight(w, target, comb.WithToucher(player), highlight, true)
			p := w.Get(player, component.CPlayer).(component.Player)
			p.InteractionCandidate = target
			w.Add(player, p)
			applied = append(applied, Contact{Kind: physics.Begin, Player: player, Target: target})

		case physics.End:
			for _, target := range [2]ecs.EntityID{ev.A, ev.B} {
				c := w.Get(target, component.CCombinable)
				if c == nil {
					continue
				}
				comb := c.(component.Combinable)
				other, _ := ev.Other(target)
				if w.Alive(other) && !w.Has(other, component.CPlayer) {
					continue
				}
				// A dead partner counts only if it was a touching player.
				if !w.Alive(other) && !comb.TouchedBy(other) {
					continue
				}
				setHighlight(w, target, comb.WithoutToucher(other), highlight, false)
				if c := w.Get(other, component.CPlayer); c != nil {
					p := c.(component.Player)
					if p.InteractionCandidate == target {
						p.InteractionCandidate = ecs.NilEntity
						w.Add(other, p)
					}
				}
				applied = append(applied, Contact{Kind: physics.End, Player: other, Target: target})
			}
		}
	}
	return applied
}

// playerAndCombinable orients a Begin event. ok is false unless one side is a
// player and the other a combinable.
func playerAndCombinable(w *ecs.World, ev physics.Event) (player, target ecs.EntityID, ok bool) {
	switch {
	case w.Has(ev.A, component.CPlayer) && w.Has(ev.B, component.CCombinable):
		return ev.A, ev.B, true
	case w.Has(ev.B, component.CPlayer) && w.Has(ev.A, component.CCombinable):
		return ev.B, ev.A, true
	}
	return ecs.NilEntity, ecs.NilEntity, false
}

// setHighlight stores comb with the Highlighted flag set to on, and writes the
// applied material with it when the flag changes.
func setHighlight(w *ecs.World, id ecs.EntityID, comb component.Combinable, highlight asset.MaterialHandle, on bool) {
	changed := comb.Highlighted != on
	comb.Highlighted = on
	w.Add(id, comb)
	if !changed {
		return
	}
	mat := comb.OriginalMaterial
	if on {
		mat = highlight
	}
	w.Add(id, component.Material{Handle: mat})
}

// Candidate returns the player's interaction candidate if it still resolves
// to a live combinable. A dangling reference reads as no candidate.
func Candidate(w *ecs.World, player ecs.EntityID) (ecs.EntityID, bool) {
	c := w.Get(player, component.CPlayer)
	if c == nil {
		return ecs.NilEntity, false
	}
	id := c.(component.Player).InteractionCandidate
	if id == ecs.NilEntity || !w.Alive(id) || !w.Has(id, component.CCombinable) {
		return ecs.NilEntity, false
	}
	return id, true
}
