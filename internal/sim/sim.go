// Package sim runs one sandbox: it owns the world and drives the physics step
// and the gameplay systems in a fixed order every frame.
package sim

import (
	"time"

	"cube-combine/internal/asset"
	"cube-combine/internal/config"
	"cube-combine/internal/ecs"
	"cube-combine/internal/factory"
	"cube-combine/internal/input"
	"cube-combine/internal/logging"
	"cube-combine/internal/physics"
	"cube-combine/internal/scene"
	"cube-combine/internal/system"

	"github.com/rs/zerolog"
)

// Report is everything that happened in one frame.
type Report struct {
	Frame    uint64
	Events   physics.Frame
	Landed   []ecs.EntityID
	Contacts []system.Contact
	Jumps    []ecs.EntityID
	Combines []system.CombineResult
}

// Sim is a single running sandbox. It is not safe for concurrent use.
type Sim struct {
	world     *ecs.World
	store     *asset.Store
	highlight asset.MaterialHandle
	physics   *physics.Simulator
	movement  system.Movement
	dt        float64
	layout    scene.Layout
	frame     uint64

	log   zerolog.Logger
	trace zerolog.Logger
}

// New spawns sc into a fresh world tuned by cfg.
func New(cfg config.Config, sc scene.Scene, logger zerolog.Logger) *Sim {
	w := ecs.NewWorld()
	store := asset.NewStore()
	s := &Sim{
		world:     w,
		store:     store,
		highlight: factory.NewHighlightMaterial(store),
		physics: physics.NewSimulator(physics.Config{
			Gravity:     cfg.Physics.Gravity,
			ContactSkin: cfg.Physics.ContactSkin,
		}),
		movement: system.Movement{
			Speed:       cfg.Movement.Speed,
			JumpImpulse: cfg.Movement.JumpImpulse,
		},
		dt:    cfg.TickInterval().Seconds(),
		log:   logger,
		trace: logging.Sampled(logger, 5, 10*time.Second, 600),
	}
	s.layout = sc.Spawn(w, store, cfg.Physics.GravityScale)
	s.log.Info().
		Uint64("player", uint64(s.layout.Player)).
		Int("interactables", len(s.layout.Interactables)).
		Int("entities", w.Count()).
		Int("materials", store.MaterialCount()).
		Float64("dt", s.dt).
		Msg("sandbox ready")
	return s
}

// Step advances the sandbox by one frame. The caller closes the input frame
// afterwards.
func (s *Sim) Step(in input.Source) Report {
	s.frame++
	r := Report{Frame: s.frame}

	r.Events = s.physics.Step(s.world, s.dt)
	r.Landed = system.TrackGrounded(s.world, r.Events)
	r.Contacts = system.TrackInteractions(s.world, r.Events, s.highlight)
	system.MovePlayers(s.world, in, s.movement)
	r.Jumps = system.JumpPlayers(s.world, in, s.movement)
	r.Combines = system.CombineOnConfirm(s.world, in, s.store)

	s.logReport(r)
	return r
}

func (s *Sim) logReport(r Report) {
	s.trace.Trace().Uint64("frame", r.Frame).Int("events", r.Events.Len()).Msg("step")
	for ev := range r.Events.All() {
		s.trace.Trace().Uint64("frame", r.Frame).Stringer("event", ev).Msg("collision")
	}
	for _, id := range r.Landed {
		s.log.Debug().Uint64("frame", r.Frame).Uint64("player", uint64(id)).Msg("grounded")
	}
	for _, c := range r.Contacts {
		s.log.Debug().
			Uint64("frame", r.Frame).
			Stringer("kind", c.Kind).
			Uint64("player", uint64(c.Player)).
			Uint64("target", uint64(c.Target)).
			Msg("interaction")
	}
	for _, id := range r.Jumps {
		s.log.Debug().Uint64("frame", r.Frame).Uint64("player", uint64(id)).Msg("jump")
	}
	for _, c := range r.Combines {
		s.log.Info().
			Uint64("frame", r.Frame).
			Uint64("player", uint64(c.Player)).
			Uint64("absorbed", uint64(c.Absorbed)).
			Stringer("category", c.Category).
			Msg("combined")
	}
}

// World exposes the sandbox's entities for rendering and tests.
func (s *Sim) World() *ecs.World { return s.world }

// Assets exposes the material and mesh store.
func (s *Sim) Assets() *asset.Store { return s.store }

// Player returns the scene's player entity.
func (s *Sim) Player() ecs.EntityID { return s.layout.Player }

// Layout returns the entities the scene spawned.
func (s *Sim) Layout() scene.Layout { return s.layout }

// Highlight returns the shared highlight material.
func (s *Sim) Highlight() asset.MaterialHandle { return s.highlight }

// Frame is the number of completed steps.
func (s *Sim) Frame() uint64 { return s.frame }
