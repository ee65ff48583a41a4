package physics

import (
	"math"

	"cube-combine/internal/component"
	"cube-combine/internal/ecs"

	"github.com/go-gl/mathgl/mgl64"
)

// Config holds the tunable constants of the physics step.
type Config struct {
	// Gravity is the vertical acceleration applied to dynamic bodies before
	// their GravityScale.
	Gravity float64
	// ContactSkin is the largest gap between two volumes still reported as
	// contact. It keeps resting contacts from flickering between steps.
	ContactSkin float64
}

// DefaultConfig mirrors the defaults of the config package.
func DefaultConfig() Config {
	return Config{Gravity: -9.81, ContactSkin: 0.01}
}

// Simulator integrates dynamic bodies, keeps them out of fixed solids and
// reports contact transitions.
type Simulator struct {
	cfg      Config
	contacts *contactTracker
}

// NewSimulator creates a Simulator with no active contacts.
func NewSimulator(cfg Config) *Simulator {
	return &Simulator{cfg: cfg, contacts: newContactTracker()}
}

// Touching reports whether a and b were in contact after the last Step.
func (s *Simulator) Touching(a, b ecs.EntityID) bool {
	return s.contacts.touching(a, b)
}

// Step advances the world by dt seconds and returns the step's transitions.
func (s *Simulator) Step(w *ecs.World, dt float64) Frame {
	s.integrate(w, dt)
	s.resolve(w)
	vols := collectVolumes(w)

	touching := make(map[pairKey]bool)
	for i := 0; i < len(vols); i++ {
		for j := i + 1; j < len(vols); j++ {
			a, b := vols[i], vols[j]
			if a.owner == b.owner || (a.static && b.static) {
				continue
			}
			if !a.col.Groups.Interacts(b.col.Groups) {
				continue
			}
			if inContact(a, b, s.cfg.ContactSkin) {
				touching[makePair(a.id, b.id)] = true
			}
		}
	}
	return Frame{events: s.contacts.diff(w, touching)}
}

func (s *Simulator) integrate(w *ecs.World, dt float64) {
	for _, id := range w.Query(component.CRigidBody, component.CTransform, component.CVelocity) {
		rb := w.Get(id, component.CRigidBody).(component.RigidBody)
		if rb.Kind != component.BodyDynamic {
			continue
		}
		vel := w.Get(id, component.CVelocity).(component.Velocity)
		tr := w.Get(id, component.CTransform).(component.Transform)

		vel.Linear[1] += s.cfg.Gravity * rb.GravityScale * dt
		tr.Translation = tr.Translation.Add(vel.Linear.Mul(dt))

		w.Add(id, vel)
		w.Add(id, tr)
	}
}

// resolve pushes every dynamic solid out of every fixed solid it penetrates,
// along the axis of least penetration, and cancels velocity into the contact.
func (s *Simulator) resolve(w *ecs.World) {
	var solids []volume
	for _, v := range collectVolumes(w) {
		if v.static && !v.col.Sensor && !v.child {
			solids = append(solids, v)
		}
	}
	for _, id := range w.Query(component.CRigidBody, component.CTransform, component.CCollider) {
		rb := w.Get(id, component.CRigidBody).(component.RigidBody)
		col := w.Get(id, component.CCollider).(component.Collider)
		if rb.Kind != component.BodyDynamic || col.Sensor {
			continue
		}
		tr := w.Get(id, component.CTransform).(component.Transform)
		var vel component.Velocity
		if c := w.Get(id, component.CVelocity); c != nil {
			vel = c.(component.Velocity)
		}
		half := halfExtents(col)
		for _, solid := range solids {
			if !col.Groups.Interacts(solid.col.Groups) {
				continue
			}
			axis, depth, ok := penetration(tr.Translation, half, solid.center, halfExtents(solid.col))
			if !ok {
				continue
			}
			tr.Translation[axis] += depth
			if vel.Linear[axis]*depth < 0 {
				vel.Linear[axis] = 0
			}
		}
		w.Add(id, tr)
		if w.Has(id, component.CVelocity) {
			w.Add(id, vel)
		}
	}
}

// penetration returns the signed push that separates box a from box b along
// the axis of least overlap. ok is false when the boxes do not overlap.
func penetration(ca, ha, cb, hb mgl64.Vec3) (axis int, depth float64, ok bool) {
	best := math.Inf(1)
	for i := 0; i < 3; i++ {
		d := ca[i] - cb[i]
		overlap := ha[i] + hb[i] - math.Abs(d)
		if overlap <= 0 {
			return 0, 0, false
		}
		if overlap < best {
			best = overlap
			axis = i
			depth = overlap
			if d < 0 {
				depth = -overlap
			}
		}
	}
	return axis, depth, true
}

// volume is a collider placed in world space for one step.
type volume struct {
	id     ecs.EntityID
	owner  ecs.EntityID // the body the collider moves with
	center mgl64.Vec3
	col    component.Collider
	static bool
	child  bool
}

// collectVolumes places every collider in world space. Children are offset by
// their parent's translation; a child whose parent is gone is skipped.
func collectVolumes(w *ecs.World) []volume {
	ids := w.Query(component.CCollider, component.CTransform)
	vols := make([]volume, 0, len(ids))
	for _, id := range ids {
		tr := w.Get(id, component.CTransform).(component.Transform)
		v := volume{
			id:     id,
			owner:  id,
			center: tr.Translation,
			col:    w.Get(id, component.CCollider).(component.Collider),
		}
		if p := w.Get(id, component.CParent); p != nil {
			parent := p.(component.Parent).ID
			pt := w.Get(parent, component.CTransform)
			if pt == nil {
				continue
			}
			v.owner = parent
			v.child = true
			v.center = v.center.Add(pt.(component.Transform).Translation)
		}
		v.static = !isDynamic(w, v.owner)
		vols = append(vols, v)
	}
	return vols
}

func isDynamic(w *ecs.World, id ecs.EntityID) bool {
	c := w.Get(id, component.CRigidBody)
	return c != nil && c.(component.RigidBody).Kind == component.BodyDynamic
}

func halfExtents(c component.Collider) mgl64.Vec3 {
	if c.Shape == component.ShapeBall {
		return mgl64.Vec3{c.Radius, c.Radius, c.Radius}
	}
	return c.HalfExtents
}

func inContact(a, b volume, skin float64) bool {
	switch {
	case a.col.Shape == component.ShapeBall && b.col.Shape == component.ShapeBall:
		return a.center.Sub(b.center).Len() <= a.col.Radius+b.col.Radius+skin
	case a.col.Shape == component.ShapeBall:
		return ballBoxDistance(a.center, b.center, b.col.HalfExtents) <= a.col.Radius+skin
	case b.col.Shape == component.ShapeBall:
		return ballBoxDistance(b.center, a.center, a.col.HalfExtents) <= b.col.Radius+skin
	}
	for i := 0; i < 3; i++ {
		gap := math.Abs(a.center[i]-b.center[i]) - a.col.HalfExtents[i] - b.col.HalfExtents[i]
		if gap > skin {
			return false
		}
	}
	return true
}

// ballBoxDistance returns the distance from p to the closest point of the box.
func ballBoxDistance(p, center, half mgl64.Vec3) float64 {
	var closest mgl64.Vec3
	for i := 0; i < 3; i++ {
		closest[i] = mgl64.Clamp(p[i], center[i]-half[i], center[i]+half[i])
	}
	return p.Sub(closest).Len()
}
