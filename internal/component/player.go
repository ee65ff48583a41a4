package component

import "cube-combine/internal/ecs"

const (
	CPlayer   ecs.ComponentType = 9
	CGrounded ecs.ComponentType = 11
)

// Player marks a controllable entity and carries its interaction state.
type Player struct {
	// InteractionCandidate is the combinable currently in contact, or
	// ecs.NilEntity. It may point at an entity that has since been destroyed;
	// readers must check it with World.Alive before use.
	InteractionCandidate ecs.EntityID
	// CombinedWith is the category absorbed so far, CategoryNone if none.
	CombinedWith Category
}

func (Player) Type() ecs.ComponentType { return CPlayer }

// HasCombined reports whether the player already absorbed an object.
func (p Player) HasCombined() bool { return p.CombinedWith != CategoryNone }

// Grounded is true while the player may jump.
type Grounded struct {
	Value bool
}

func (Grounded) Type() ecs.ComponentType { return CGrounded }
