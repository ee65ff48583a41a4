package system

import (
	"cube-combine/internal/asset"
	"cube-combine/internal/component"
	"cube-combine/internal/ecs"
	"cube-combine/internal/input"

	"github.com/go-gl/mathgl/mgl64"
)

// CombineResult describes one completed combine.
type CombineResult struct {
	Player      ecs.EntityID
	Absorbed    ecs.EntityID
	Category    component.Category
	Material    asset.MaterialHandle
	Translation mgl64.Vec3
}

// absorbed is everything read from a candidate before it is destroyed.
type absorbed struct {
	category  component.Category
	transform component.Transform
	collider  component.Collider
	mesh      component.Mesh
	color     asset.Material
}

// CombineOnConfirm runs on the frame the confirm key goes down. Every player
// with a live candidate takes over the candidate's transform, shape and mesh,
// gets a material derived from the candidate's original colour, records the
// candidate's category, and the candidate is destroyed. A candidate that no
// longer resolves (for instance, taken by another player earlier in the same
// pass) is skipped without error. Players that already combined are skipped.
func CombineOnConfirm(w *ecs.World, in input.Source, store *asset.Store) []CombineResult {
	if !in.JustPressed(input.KeyConfirm) {
		return nil
	}
	var results []CombineResult
	for _, player := range w.Query(component.CPlayer) {
		p := w.Get(player, component.CPlayer).(component.Player)
		if p.HasCombined() {
			continue
		}
		target, ok := Candidate(w, player)
		if !ok {
			continue
		}
		src, ok := readAbsorbed(w, store, target)
		if !ok {
			continue
		}

		p.InteractionCandidate = ecs.NilEntity
		p.CombinedWith = src.category
		w.Add(player, p)

		mat := store.AddMaterial(asset.Material{
			Name:      "player+" + src.category.String(),
			BaseColor: asset.CombinedVariant(src.color.BaseColor),
		})
		w.Add(player, component.Material{Handle: mat})

		col := absorbShape(w, player, src)
		w.Add(player, src.transform)
		w.Add(player, col)
		w.Add(player, src.mesh)
		placeGroundCheck(w, player, col)

		w.DestroyEntity(target)
		forgetCandidate(w, target)

		results = append(results, CombineResult{
			Player:      player,
			Absorbed:    target,
			Category:    src.category,
			Material:    mat,
			Translation: src.transform.Translation,
		})
	}
	return results
}

// readAbsorbed resolves every component the combine needs from target.
func readAbsorbed(w *ecs.World, store *asset.Store, target ecs.EntityID) (absorbed, bool) {
	var a absorbed
	comb := w.Get(target, component.CCombinable)
	tr := w.Get(target, component.CTransform)
	col := w.Get(target, component.CCollider)
	mesh := w.Get(target, component.CMesh)
	if comb == nil || tr == nil || col == nil || mesh == nil {
		return a, false
	}
	c := comb.(component.Combinable)
	color, ok := store.Material(c.OriginalMaterial)
	if !ok {
		return a, false
	}
	a.category = c.Category
	a.transform = tr.(component.Transform)
	a.collider = col.(component.Collider)
	a.mesh = mesh.(component.Mesh)
	a.color = color
	return a, true
}

// absorbShape returns the collider the player takes on. The player keeps its
// own collision groups and stays solid.
func absorbShape(w *ecs.World, player ecs.EntityID, src absorbed) component.Collider {
	var col component.Collider
	switch src.category {
	case component.CategoryBox:
		col = component.Cuboid(src.collider.HalfExtents.X(), src.collider.HalfExtents.Y(), src.collider.HalfExtents.Z())
	default:
		col = src.collider
	}
	col.Sensor = false
	if c := w.Get(player, component.CCollider); c != nil {
		col.Groups = c.(component.Collider).Groups
	}
	return col
}

// placeGroundCheck moves the player's foot sensor to the bottom of col.
func placeGroundCheck(w *ecs.World, player ecs.EntityID, col component.Collider) {
	ch := w.Get(player, component.CChildren)
	if ch == nil {
		return
	}
	for _, child := range ch.(component.Children).IDs {
		if !w.Has(child, component.CTagGroundCheck) {
			continue
		}
		tr := component.At(mgl64.Vec3{0, -col.HalfHeight(), 0})
		if c := w.Get(child, component.CTransform); c != nil {
			tr.Scale = c.(component.Transform).Scale
		}
		w.Add(child, tr)
	}
}

// forgetCandidate clears every player's candidate that points at id.
func forgetCandidate(w *ecs.World, id ecs.EntityID) {
	for _, player := range w.Query(component.CPlayer) {
		p := w.Get(player, component.CPlayer).(component.Player)
		if p.InteractionCandidate == id {
			p.InteractionCandidate = ecs.NilEntity
			w.Add(player, p)
		}
	}
}
