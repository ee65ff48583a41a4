package component

import "cube-combine/internal/ecs"

const (
	CTagGroundCheck ecs.ComponentType = 12
	CTagGround      ecs.ComponentType = 13
)

// TagGroundCheck marks the sensor entity under a player's feet. It carries no
// data; it only tells collision consumers which events concern the foot sensor.
type TagGroundCheck struct{}

func (TagGroundCheck) Type() ecs.ComponentType { return CTagGroundCheck }

// TagGround marks terrain.
type TagGround struct{}

func (TagGround) Type() ecs.ComponentType { return CTagGround }
