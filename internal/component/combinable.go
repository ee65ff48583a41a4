package component

import (
	"slices"

	"cube-combine/internal/asset"
	"cube-combine/internal/ecs"
)

const CCombinable ecs.ComponentType = 10

// Category is the closed set of object kinds a player can absorb.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryBox
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryBox:
		return "box"
	}
	return "unknown"
}

// ParseCategory maps a scene-file name to a Category.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "box", "Box":
		return CategoryBox, true
	}
	return CategoryNone, false
}

// Combinable marks an entity a player can pick up.
// Highlighted and the entity's Material must always be written together:
// Highlighted == true exactly when Material is the shared highlight material,
// otherwise Material equals OriginalMaterial.
type Combinable struct {
	Category         Category
	Highlighted      bool
	OriginalMaterial asset.MaterialHandle
	// Touchers are the players whose contact began and has not ended. It
	// lets an End be attributed after the player side is gone.
	Touchers []ecs.EntityID
}

func (Combinable) Type() ecs.ComponentType { return CCombinable }

// TouchedBy reports whether player's contact with the combinable is open.
func (c Combinable) TouchedBy(player ecs.EntityID) bool {
	return slices.Contains(c.Touchers, player)
}

// WithToucher returns c with player added to Touchers. The slice is copied so
// earlier values of the component are left untouched.
func (c Combinable) WithToucher(player ecs.EntityID) Combinable {
	if !c.TouchedBy(player) {
		c.Touchers = append(slices.Clone(c.Touchers), player)
	}
	return c
}

// WithoutToucher returns c with player removed from Touchers.
func (c Combinable) WithoutToucher(player ecs.EntityID) Combinable {
	c.Touchers = slices.DeleteFunc(slices.Clone(c.Touchers), func(id ecs.EntityID) bool { return id == player })
	return c
}
