package component

import "cube-combine/internal/ecs"

const (
	CParent   ecs.ComponentType = 7
	CChildren ecs.ComponentType = 8
)

// Parent links a child entity to the entity it moves with.
type Parent struct {
	ID ecs.EntityID
}

func (Parent) Type() ecs.ComponentType { return CParent }

// Children lists the entities parented to this one.
type Children struct {
	IDs []ecs.EntityID
}

func (Children) Type() ecs.ComponentType { return CChildren }
