package component

import (
	"cube-combine/internal/ecs"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	CTransform ecs.ComponentType = 1
	CVelocity  ecs.ComponentType = 2
)

// Transform places an entity in the world. For entities with a Parent the
// translation is relative to the parent's translation.
type Transform struct {
	Translation mgl64.Vec3
	Scale       mgl64.Vec3
}

func (Transform) Type() ecs.ComponentType { return CTransform }

// At returns a unit-scale Transform at p.
func At(p mgl64.Vec3) Transform {
	return Transform{Translation: p, Scale: mgl64.Vec3{1, 1, 1}}
}

// Velocity is the linear velocity of a rigid body in units per second.
type Velocity struct {
	Linear mgl64.Vec3
}

func (Velocity) Type() ecs.ComponentType { return CVelocity }
