package system

import (
	"cube-combine/internal/asset"
	"cube-combine/internal/component"
	"cube-combine/internal/ecs"
	"cube-combine/internal/factory"
	"cube-combine/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
)

// testWorld is a player at the origin and one box at (3,0,0).
type testWorld struct {
	w         *ecs.World
	store     *asset.Store
	highlight asset.MaterialHandle
	player    ecs.EntityID
	box       ecs.EntityID
}

func setupTestWorld() *testWorld {
	w := ecs.NewWorld()
	store := asset.NewStore()
	tw := &testWorld{w: w, store: store, highlight: factory.NewHighlightMaterial(store)}
	tw.player = factory.SpawnPlayer(w, store, factory.DefaultPlayer(mgl64.Vec3{0, 0, 0}))
	tw.box = factory.SpawnCombinable(w, store, factory.DefaultBox(mgl64.Vec3{3, 0, 0}))
	return tw
}

func (tw *testWorld) spawnBox(pos mgl64.Vec3) ecs.EntityID {
	return factory.SpawnCombinable(tw.w, tw.store, factory.DefaultBox(pos))
}

func (tw *testWorld) spawnPlayer(pos mgl64.Vec3) ecs.EntityID {
	return factory.SpawnPlayer(tw.w, tw.store, factory.DefaultPlayer(pos))
}

func (tw *testWorld) foot(player ecs.EntityID) ecs.EntityID {
	return tw.w.Get(player, component.CChildren).(component.Children).IDs[0]
}

func (tw *testWorld) combinable(id ecs.EntityID) component.Combinable {
	return tw.w.Get(id, component.CCombinable).(component.Combinable)
}

func (tw *testWorld) material(id ecs.EntityID) asset.MaterialHandle {
	return tw.w.Get(id, component.CMaterial).(component.Material).Handle
}

func (tw *testWorld) playerComp(id ecs.EntityID) component.Player {
	return tw.w.Get(id, component.CPlayer).(component.Player)
}

func (tw *testWorld) grounded(id ecs.EntityID) bool {
	return tw.w.Get(id, component.CGrounded).(component.Grounded).Value
}

func (tw *testWorld) velocity(id ecs.EntityID) mgl64.Vec3 {
	return tw.w.Get(id, component.CVelocity).(component.Velocity).Linear
}

func begin(a, b ecs.EntityID) physics.Event { return physics.Event{Kind: physics.Begin, A: a, B: b} }
func end(a, b ecs.EntityID) physics.Event   { return physics.Event{Kind: physics.End, A: a, B: b} }
