// Package asset holds materials and meshes behind opaque handles. Components
// store handles only; the data lives here for the lifetime of a world.
package asset

import "github.com/lucasb-eyer/go-colorful"

// MaterialHandle refers to a Material in a Store. The zero value means none.
type MaterialHandle uint32

// MeshHandle refers to a Mesh in a Store. The zero value means none.
type MeshHandle uint32

// Material is the surface description of a renderable entity.
type Material struct {
	Name      string
	BaseColor colorful.Color
}

// MeshKind enumerates the primitive shapes a mesh can describe.
type MeshKind uint8

const (
	MeshCube MeshKind = iota
	MeshPlane
	MeshBall
)

func (k MeshKind) String() string {
	switch k {
	case MeshCube:
		return "cube"
	case MeshPlane:
		return "plane"
	case MeshBall:
		return "ball"
	}
	return "unknown"
}

// Mesh is a primitive shape with one characteristic size (edge length for
// cubes and planes, diameter for balls).
type Mesh struct {
	Kind MeshKind
	Size float64
}

// Store owns every material and mesh added to it. Handles are never reused.
type Store struct {
	materials []Material
	meshes    []Mesh
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// AddMaterial stores m and returns its handle.
func (s *Store) AddMaterial(m Material) MaterialHandle {
	s.materials = append(s.materials, m)
	return MaterialHandle(len(s.materials))
}

// Material returns the material for h; ok is false for the zero or an unknown handle.
func (s *Store) Material(h MaterialHandle) (Material, bool) {
	if h == 0 || int(h) > len(s.materials) {
		return Material{}, false
	}
	return s.materials[h-1], true
}

// AddMesh stores m and returns its handle.
func (s *Store) AddMesh(m Mesh) MeshHandle {
	s.meshes = append(s.meshes, m)
	return MeshHandle(len(s.meshes))
}

// Mesh returns the mesh for h; ok is false for the zero or an unknown handle.
func (s *Store) Mesh(h MeshHandle) (Mesh, bool) {
	if h == 0 || int(h) > len(s.meshes) {
		return Mesh{}, false
	}
	return s.meshes[h-1], true
}

// MaterialCount returns the number of stored materials.
func (s *Store) MaterialCount() int { return len(s.materials) }
