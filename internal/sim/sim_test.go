package sim

import (
	"bytes"
	"testing"

	"cube-combine/internal/component"
	"cube-combine/internal/config"
	"cube-combine/internal/ecs"
	"cube-combine/internal/input"
	"cube-combine/internal/logging"
	"cube-combine/internal/physics"
	"cube-combine/internal/scene"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

func testConfig() config.Config {
	return config.Config{
		TickRateHz: 60,
		Movement:   config.MovementConfig{Speed: 10, JumpImpulse: 10},
		Physics:    config.PhysicsConfig{Gravity: -9.81, GravityScale: 5, ContactSkin: 0.01},
		Input:      config.InputConfig{HoldMS: 250, RepeatDelayMS: 700},
	}
}

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	sc, err := scene.Default()
	if err != nil {
		t.Fatalf("default scene: %v", err)
	}
	return New(testConfig(), sc, zerolog.Nop())
}

// run steps the sim n frames with keys held, returning every report.
func run(s *Sim, in *input.State, n int, keys ...input.Key) []Report {
	for _, k := range keys {
		in.Press(k)
	}
	reports := make([]Report, 0, n)
	for range n {
		reports = append(reports, s.Step(in))
		in.Advance()
	}
	for _, k := range keys {
		in.Release(k)
	}
	return reports
}

// runUntil steps with keys held until pred holds or max frames pass.
func runUntil(t *testing.T, s *Sim, in *input.State, max int, pred func(Report) bool, keys ...input.Key) Report {
	t.Helper()
	for _, k := range keys {
		in.Press(k)
	}
	defer func() {
		for _, k := range keys {
			in.Release(k)
		}
	}()
	for range max {
		r := s.Step(in)
		in.Advance()
		if pred(r) {
			return r
		}
	}
	t.Fatalf("condition not reached within %d frames", max)
	return Report{}
}

func (s *Sim) translation(id ecs.EntityID) mgl64.Vec3 {
	return s.world.Get(id, component.CTransform).(component.Transform).Translation
}

func (s *Sim) playerComp() component.Player {
	return s.world.Get(s.Player(), component.CPlayer).(component.Player)
}

func (s *Sim) box() ecs.EntityID { return s.layout.Interactables[0] }

func touchedBox(s *Sim) func(Report) bool {
	return func(r Report) bool {
		for _, c := range r.Contacts {
			if c.Kind == physics.Begin && c.Target == s.box() {
				return true
			}
		}
		return false
	}
}

func TestPlayerRestsOnGround(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	run(s, &in, 60)

	y := s.translation(s.Player()).Y()
	if y < 0.59 || y > 0.61 {
		t.Fatalf("player y = %v; want ~0.6", y)
	}
	if !s.world.Get(s.Player(), component.CGrounded).(component.Grounded).Value {
		t.Fatal("resting player should be grounded")
	}
}

func TestWalkIntoBoxHighlightsIt(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	runUntil(t, s, &in, 60, touchedBox(s), input.KeyRight)

	comb := s.world.Get(s.box(), component.CCombinable).(component.Combinable)
	if !comb.Highlighted {
		t.Fatal("touched box should be highlighted")
	}
	if mat := s.world.Get(s.box(), component.CMaterial).(component.Material).Handle; mat != s.Highlight() {
		t.Fatalf("box material = %v; want highlight %v", mat, s.Highlight())
	}
	if got := s.playerComp().InteractionCandidate; got != s.box() {
		t.Fatalf("candidate = %v; want box %v", got, s.box())
	}
	if x := s.translation(s.Player()).X(); x > 1.5+1e-9 {
		t.Fatalf("player x = %v; should be stopped by the box", x)
	}
}

func TestWalkAwayRevertsHighlight(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	runUntil(t, s, &in, 60, touchedBox(s), input.KeyRight)
	run(s, &in, 20, input.KeyLeft)

	comb := s.world.Get(s.box(), component.CCombinable).(component.Combinable)
	if comb.Highlighted {
		t.Fatal("box should revert once the player leaves")
	}
	if mat := s.world.Get(s.box(), component.CMaterial).(component.Material).Handle; mat != comb.OriginalMaterial {
		t.Fatalf("box material = %v; want original %v", mat, comb.OriginalMaterial)
	}
	if got := s.playerComp().InteractionCandidate; got != ecs.NilEntity {
		t.Fatalf("candidate = %v; want none", got)
	}
}

func TestConfirmCombinesWithTouchedBox(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	runUntil(t, s, &in, 60, touchedBox(s), input.KeyRight)
	box := s.box()

	reports := run(s, &in, 1, input.KeyConfirm)
	if len(reports[0].Combines) != 1 {
		t.Fatalf("combines = %d; want 1", len(reports[0].Combines))
	}
	if s.world.Alive(box) {
		t.Fatal("box should be gone")
	}
	p := s.playerComp()
	if p.CombinedWith != component.CategoryBox || p.InteractionCandidate != ecs.NilEntity {
		t.Fatalf("player = %+v", p)
	}
	if got := s.translation(s.Player()); got != (mgl64.Vec3{3, 1.1, 0}) {
		t.Fatalf("player translation = %v; want the box's", got)
	}

	// The combined player settles on the ground with its new size.
	run(s, &in, 60)
	y := s.translation(s.Player()).Y()
	if y < 1.09 || y > 1.11 {
		t.Fatalf("combined player y = %v; want ~1.1", y)
	}
}

func TestConfirmWithoutCandidateDoesNothing(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	run(s, &in, 10)
	reports := run(s, &in, 1, input.KeyConfirm)
	if len(reports[0].Combines) != 0 || !s.world.Alive(s.box()) {
		t.Fatal("confirm away from any box must not combine")
	}
}

func TestHeldConfirmBeforeContactDoesNotCombine(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	in.Press(input.KeyConfirm)
	runUntil(t, s, &in, 60, touchedBox(s), input.KeyRight)
	run(s, &in, 10, input.KeyConfirm)
	if !s.world.Alive(s.box()) {
		t.Fatal("a confirm held since before contact must not combine")
	}
}

func TestJumpLeavesAndReturnsToGround(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	run(s, &in, 30)

	reports := run(s, &in, 1, input.KeyJump)
	if len(reports[0].Jumps) != 1 {
		t.Fatalf("jumps = %d; want 1", len(reports[0].Jumps))
	}
	if s.world.Get(s.Player(), component.CGrounded).(component.Grounded).Value {
		t.Fatal("jumping clears grounded")
	}

	peak := 0.0
	runUntil(t, s, &in, 120, func(r Report) bool {
		peak = max(peak, s.translation(s.Player()).Y())
		return len(r.Landed) == 1 && r.Landed[0] == s.Player()
	})
	if peak < 1.2 {
		t.Fatalf("jump peak = %v; expected the player to leave the ground", peak)
	}
}

func TestHeldJumpFiresOnce(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	run(s, &in, 30)

	jumps := 0
	for _, r := range run(s, &in, 120, input.KeyJump) {
		jumps += len(r.Jumps)
	}
	if jumps != 1 {
		t.Fatalf("holding jump for 2s jumped %d times; want 1", jumps)
	}
}

func TestStepNumbersFrames(t *testing.T) {
	s := newTestSim(t)
	var in input.State
	reports := run(s, &in, 3)
	for i, r := range reports {
		if r.Frame != uint64(i+1) {
			t.Fatalf("report %d frame = %d", i, r.Frame)
		}
	}
	if s.Frame() != 3 {
		t.Fatalf("Frame() = %d; want 3", s.Frame())
	}
}

func TestCombineIsLogged(t *testing.T) {
	sc, err := scene.Default()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s := New(testConfig(), sc, logging.New(&buf, "debug"))
	var in input.State
	runUntil(t, s, &in, 60, touchedBox(s), input.KeyRight)
	run(s, &in, 1, input.KeyConfirm)

	out := buf.String()
	for _, want := range []string{"sandbox ready", "interaction", "combined", "category=box"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestSandboxReadyCountsEntities(t *testing.T) {
	sc, err := scene.Default()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	New(testConfig(), sc, logging.New(&buf, "info"))
	// Ground, player, foot sensor and one box.
	if !bytes.Contains(buf.Bytes(), []byte("entities=4")) {
		t.Fatalf("sandbox ready line lacks the entity count:\n%s", buf.String())
	}
}

func TestCollisionTraceIsSampled(t *testing.T) {
	sc, err := scene.Default()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s := New(testConfig(), sc, logging.New(&buf, "trace"))
	var in input.State
	runUntil(t, s, &in, 60, touchedBox(s), input.KeyRight)

	collisions := 0
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if !bytes.Contains(line, []byte("collision")) {
			continue
		}
		collisions++
		if !bytes.Contains(line, []byte("sampled=true")) {
			t.Errorf("collision trace bypassed the sampler: %s", line)
		}
	}
	if collisions == 0 {
		t.Fatalf("no collision traces logged:\n%s", buf.String())
	}
}
