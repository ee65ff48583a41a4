package system

import (
	"cube-combine/internal/component"
	"cube-combine/internal/ecs"
	"cube-combine/internal/input"

	"github.com/go-gl/mathgl/mgl64"
)

// Movement holds the player's motion tuning.
type Movement struct {
	Speed       float64 // horizontal speed, units per second
	JumpImpulse float64 // vertical velocity set on jump
}

// directions maps each movement key to its unit vector on the XZ plane.
var directions = [...]struct {
	key input.Key
	dir mgl64.Vec3
}{
	{input.KeyUp, mgl64.Vec3{0, 0, -1}},
	{input.KeyDown, mgl64.Vec3{0, 0, 1}},
	{input.KeyRight, mgl64.Vec3{1, 0, 0}},
	{input.KeyLeft, mgl64.Vec3{-1, 0, 0}},
}

// normalizeOrZero returns v scaled to unit length, or the zero vector when v
// has no length (no key or opposing keys held).
func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// MovePlayers sets every player's horizontal velocity from the held
// direction keys. Vertical velocity is left alone.
func MovePlayers(w *ecs.World, in input.Source, m Movement) {
	var dir mgl64.Vec3
	for _, d := range directions {
		if in.Pressed(d.key) {
			dir = dir.Add(d.dir)
		}
	}
	v := normalizeOrZero(dir).Mul(m.Speed)

	for _, id := range w.Query(component.CPlayer, component.CVelocity) {
		vel := w.Get(id, component.CVelocity).(component.Velocity)
		vel.Linear[0] = v.X()
		vel.Linear[2] = v.Z()
		w.Add(id, vel)
	}
}

// JumpPlayers launches every grounded player on the frame the jump key goes
// down. Holding the key does nothing more; it must be released and pressed
// again. It returns the players that jumped.
func JumpPlayers(w *ecs.World, in input.Source, m Movement) []ecs.EntityID {
	if !in.JustPressed(input.KeyJump) {
		return nil
	}
	var jumped []ecs.EntityID
	for _, id := range w.Query(component.CPlayer, component.CVelocity, component.CGrounded) {
		if !w.Get(id, component.CGrounded).(component.Grounded).Value {
			continue
		}
		vel := w.Get(id, component.CVelocity).(component.Velocity)
		vel.Linear[1] = m.JumpImpulse
		w.Add(id, component.Grounded{Value: false})
		w.Add(id, vel)
		jumped = append(jumped, id)
	}
	return jumped
}
