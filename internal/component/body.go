package component

import (
	"cube-combine/internal/ecs"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	CCollider  ecs.ComponentType = 5
	CRigidBody ecs.ComponentType = 6
)

// ShapeKind selects which Collider fields describe the volume.
type ShapeKind uint8

const (
	ShapeCuboid ShapeKind = iota // uses HalfExtents
	ShapeBall                    // uses Radius
)

// Group bits for CollisionGroups.
const (
	GroupPlayer uint32 = 0b0001
	GroupWorld  uint32 = 0b0010
	GroupAll    uint32 = 0xFFFFFFFF
)

// CollisionGroups decides which colliders may interact. Two colliders
// interact only if each one's memberships intersect the other's filter.
type CollisionGroups struct {
	Memberships uint32
	Filter      uint32
}

// AllGroups interacts with everything.
var AllGroups = CollisionGroups{Memberships: GroupAll, Filter: GroupAll}

// Interacts reports whether g and o allow a contact between them.
func (g CollisionGroups) Interacts(o CollisionGroups) bool {
	return g.Memberships&o.Filter != 0 && o.Memberships&g.Filter != 0
}

// Collider is the collision volume of an entity, centred on its translation.
// Sensors report contacts but are never pushed or pushed against.
type Collider struct {
	Shape       ShapeKind
	HalfExtents mgl64.Vec3
	Radius      float64
	Sensor      bool
	Groups      CollisionGroups
}

func (Collider) Type() ecs.ComponentType { return CCollider }

// Cuboid returns a solid box collider with the given half extents.
func Cuboid(hx, hy, hz float64) Collider {
	return Collider{Shape: ShapeCuboid, HalfExtents: mgl64.Vec3{hx, hy, hz}, Groups: AllGroups}
}

// Ball returns a solid sphere collider.
func Ball(r float64) Collider {
	return Collider{Shape: ShapeBall, Radius: r, Groups: AllGroups}
}

// HalfHeight returns the distance from the collider's centre to its bottom.
func (c Collider) HalfHeight() float64 {
	if c.Shape == ShapeBall {
		return c.Radius
	}
	return c.HalfExtents.Y()
}

// BodyKind distinguishes simulated bodies from immovable ones.
type BodyKind uint8

const (
	BodyFixed BodyKind = iota
	BodyDynamic
)

// RigidBody makes an entity take part in the physics step.
type RigidBody struct {
	Kind         BodyKind
	GravityScale float64
	LockRotation bool
}

func (RigidBody) Type() ecs.ComponentType { return CRigidBody }
