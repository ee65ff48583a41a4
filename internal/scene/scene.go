// Package scene describes the initial layout of a sandbox and spawns it into
// a world.
package scene

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cube-combine/assets"
	"cube-combine/internal/asset"
	"cube-combine/internal/component"
	"cube-combine/internal/ecs"
	"cube-combine/internal/factory"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Scene is the starting layout of a sandbox as read from YAML.
type Scene struct {
	Ground        GroundSpec         `yaml:"ground"`
	Player        PlayerSpec         `yaml:"player"`
	Interactables []InteractableSpec `yaml:"interactables"`
}

// GroundSpec describes the ground slab. HalfSize is its X and Z half extent.
type GroundSpec struct {
	HalfSize float64 `yaml:"half_size"`
	Color    string  `yaml:"color"`
}

// PlayerSpec places the player cube. Size is the edge length.
type PlayerSpec struct {
	Position [3]float64 `yaml:"position"`
	Size     float64    `yaml:"size"`
	Color    string     `yaml:"color"`
}

// InteractableSpec places one object the player can absorb. Category must
// name a combinable category such as "box".
type InteractableSpec struct {
	Category string     `yaml:"category"`
	Position [3]float64 `yaml:"position"`
	Size     float64    `yaml:"size"`
	Color    string     `yaml:"color"`
}

// Layout holds the entities a scene spawned.
type Layout struct {
	Ground        ecs.EntityID
	Player        ecs.EntityID
	Interactables []ecs.EntityID
}

// Default parses the built-in scene.
func Default() (Scene, error) {
	return Parse(assets.DefaultScene)
}

// Load reads a scene file. An empty path selects the built-in scene.
func Load(path string) (Scene, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML scene. Zero sizes take the factory
// defaults.
func Parse(b []byte) (Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Scene{}, fmt.Errorf("decode scene: %w", err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

func (s *Scene) normalize() {
	if s.Ground.HalfSize == 0 {
		s.Ground.HalfSize = factory.GroundHalfSize
	}
	if s.Player.Size == 0 {
		s.Player.Size = factory.PlayerSize
	}
	for i := range s.Interactables {
		if s.Interactables[i].Size == 0 {
			s.Interactables[i].Size = factory.BoxSize
		}
	}
}

// Validate reports every problem in the scene at once.
func (s Scene) Validate() error {
	var errs []error
	if s.Ground.HalfSize < 0 {
		errs = append(errs, fmt.Errorf("ground.half_size must be positive, got %v", s.Ground.HalfSize))
	}
	if s.Player.Size < 0 {
		errs = append(errs, fmt.Errorf("player.size must be positive, got %v", s.Player.Size))
	}
	if err := checkColor(s.Ground.Color); err != nil {
		errs = append(errs, fmt.Errorf("ground.color: %w", err))
	}
	if err := checkColor(s.Player.Color); err != nil {
		errs = append(errs, fmt.Errorf("player.color: %w", err))
	}
	for i, it := range s.Interactables {
		if cat, ok := component.ParseCategory(it.Category); !ok || cat == component.CategoryNone {
			errs = append(errs, fmt.Errorf("interactables[%d]: unknown category %q", i, it.Category))
		}
		if it.Size < 0 {
			errs = append(errs, fmt.Errorf("interactables[%d]: size must be positive, got %v", i, it.Size))
		}
		if err := checkColor(it.Color); err != nil {
			errs = append(errs, fmt.Errorf("interactables[%d].color: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func checkColor(hex string) error {
	if hex == "" {
		return nil
	}
	_, err := asset.ParseColor(hex)
	return err
}

func colorOr(hex string, fallback colorful.Color) colorful.Color {
	if hex == "" {
		return fallback
	}
	c, err := asset.ParseColor(hex)
	if err != nil {
		return fallback
	}
	return c
}

// Spawn creates the scene's entities. gravityScale applies to the player.
func (s Scene) Spawn(w *ecs.World, store *asset.Store, gravityScale float64) Layout {
	var l Layout
	l.Ground = factory.SpawnGround(w, store, factory.GroundSpec{
		HalfSize: s.Ground.HalfSize,
		Color:    colorOr(s.Ground.Color, asset.ColorWhite),
	})

	ps := factory.DefaultPlayer(mgl64.Vec3(s.Player.Position))
	ps.Size = s.Player.Size
	ps.GravityScale = gravityScale
	ps.Color = colorOr(s.Player.Color, asset.ColorBlue)
	l.Player = factory.SpawnPlayer(w, store, ps)

	for _, it := range s.Interactables {
		cat, _ := component.ParseCategory(it.Category)
		l.Interactables = append(l.Interactables, factory.SpawnCombinable(w, store, factory.CombinableSpec{
			Category: cat,
			Position: mgl64.Vec3(it.Position),
			Size:     it.Size,
			Color:    colorOr(it.Color, asset.ColorPink),
		}))
	}
	return l
}
