package component

import (
	"cube-combine/internal/asset"
	"cube-combine/internal/ecs"
)

const (
	CMaterial ecs.ComponentType = 3
	CMesh     ecs.ComponentType = 4
)

// Material is the currently applied surface of an entity.
type Material struct {
	Handle asset.MaterialHandle
}

func (Material) Type() ecs.ComponentType { return CMaterial }

// Mesh is the visual shape of an entity.
type Mesh struct {
	Handle asset.MeshHandle
}

func (Mesh) Type() ecs.ComponentType { return CMesh }
