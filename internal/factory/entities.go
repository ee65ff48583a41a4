package factory

import (
	"cube-combine/internal/asset"
	"cube-combine/internal/component"
	"cube-combine/internal/ecs"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Defaults for the bootstrap entities.
const (
	PlayerSize         = 1.0
	PlayerGravityScale = 5.0
	BoxSize            = 2.0
	GroundHalfSize     = 100.0
	GroundHalfHeight   = 0.1
)

// playerGroups keeps the player body and its foot sensor from ever
// interacting with each other while both still hit world geometry.
var playerGroups = component.CollisionGroups{
	Memberships: component.GroupPlayer,
	Filter:      component.GroupWorld,
}

// PlayerSpec describes a player to spawn.
type PlayerSpec struct {
	Position     mgl64.Vec3
	Size         float64
	GravityScale float64
	Color        colorful.Color
}

// DefaultPlayer returns the standard blue 1-unit player at pos.
func DefaultPlayer(pos mgl64.Vec3) PlayerSpec {
	return PlayerSpec{Position: pos, Size: PlayerSize, GravityScale: PlayerGravityScale, Color: asset.ColorBlue}
}

// SpawnPlayer creates a player cube and its child foot sensor. The player
// starts grounded with no candidate and nothing combined.
func SpawnPlayer(w *ecs.World, store *asset.Store, spec PlayerSpec) ecs.EntityID {
	half := spec.Size / 2
	body := component.Cuboid(half, half, half)
	body.Groups = playerGroups

	id := w.Spawn(
		component.At(spec.Position),
		body,
		component.RigidBody{Kind: component.BodyDynamic, GravityScale: spec.GravityScale, LockRotation: true},
		component.Velocity{},
		component.Mesh{Handle: store.AddMesh(asset.Mesh{Kind: asset.MeshCube, Size: spec.Size})},
		component.Material{Handle: store.AddMaterial(asset.Material{Name: "player", BaseColor: spec.Color})},
		component.Player{},
		component.Grounded{Value: true},
	)

	foot := component.Ball(spec.Size / 10)
	foot.Sensor = true
	foot.Groups = playerGroups
	sensor := w.Spawn(
		component.At(mgl64.Vec3{0, -half, 0}),
		foot,
		component.TagGroundCheck{},
		component.Parent{ID: id},
	)
	w.Add(id, component.Children{IDs: []ecs.EntityID{sensor}})
	return id
}

// CombinableSpec describes a pick-up object to spawn.
type CombinableSpec struct {
	Category component.Category
	Position mgl64.Vec3
	Size     float64
	Color    colorful.Color
}

// DefaultBox returns the standard pink 2-unit box at pos.
func DefaultBox(pos mgl64.Vec3) CombinableSpec {
	return CombinableSpec{Category: component.CategoryBox, Position: pos, Size: BoxSize, Color: asset.ColorPink}
}

// SpawnCombinable creates a fixed, unhighlighted combinable object.
func SpawnCombinable(w *ecs.World, store *asset.Store, spec CombinableSpec) ecs.EntityID {
	mat := store.AddMaterial(asset.Material{Name: spec.Category.String(), BaseColor: spec.Color})
	half := spec.Size / 2

	var mesh asset.Mesh
	var col component.Collider
	switch spec.Category {
	case component.CategoryBox:
		mesh = asset.Mesh{Kind: asset.MeshCube, Size: spec.Size}
		col = component.Cuboid(half, half, half)
	default:
		mesh = asset.Mesh{Kind: asset.MeshBall, Size: spec.Size}
		col = component.Ball(half)
	}

	return w.Spawn(
		component.At(spec.Position),
		col,
		component.Mesh{Handle: store.AddMesh(mesh)},
		component.Material{Handle: mat},
		component.Combinable{Category: spec.Category, OriginalMaterial: mat},
	)
}

// GroundSpec describes the terrain slab.
type GroundSpec struct {
	HalfSize float64
	Color    colorful.Color
}

// DefaultGround returns the standard white 200x200 slab.
func DefaultGround() GroundSpec {
	return GroundSpec{HalfSize: GroundHalfSize, Color: asset.ColorWhite}
}

// SpawnGround creates the flat terrain slab centred on the origin.
func SpawnGround(w *ecs.World, store *asset.Store, spec GroundSpec) ecs.EntityID {
	return w.Spawn(
		component.At(mgl64.Vec3{}),
		component.Cuboid(spec.HalfSize, GroundHalfHeight, spec.HalfSize),
		component.Mesh{Handle: store.AddMesh(asset.Mesh{Kind: asset.MeshPlane, Size: spec.HalfSize * 2})},
		component.Material{Handle: store.AddMaterial(asset.Material{Name: "ground", BaseColor: spec.Color})},
		component.TagGround{},
	)
}

// NewHighlightMaterial registers the shared highlight material. Call once
// per world.
func NewHighlightMaterial(store *asset.Store) asset.MaterialHandle {
	return store.AddMaterial(asset.Material{Name: "highlight", BaseColor: asset.ColorHighlight})
}
