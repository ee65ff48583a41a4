package render

import (
	"math"
	"sort"

	"cube-combine/assets"
	"cube-combine/internal/asset"
	"cube-combine/internal/component"
	"cube-combine/internal/ecs"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of rows at the bottom reserved for the HUD.
const HUDRows = 5

// maxShadeDepth is the height difference at which shading bottoms out.
const maxShadeDepth = 4.0

// Renderer draws a top-down view of the sandbox onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(h-HUDRows, 1)),
	}
}

// Resize adapts the viewport to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-HUDRows, 1)
}

// CenterOn recentres the camera on world (x, z).
func (r *Renderer) CenterOn(x, z float64) { r.camera.Center(x, z) }

// Camera exposes the view transform.
func (r *Renderer) Camera() *Camera { return r.camera }

// drawable is one visible, solid entity projected onto the XZ plane.
type drawable struct {
	id     ecs.EntityID
	top    float64 // world Y of the upper face
	minX   float64
	maxX   float64
	minZ   float64
	maxZ   float64
	mat    asset.Material
	glyph  string
	ground bool
}

// DrawFrame clears the view and draws every entity that has a transform, a
// solid collider and a material, lowest first so taller things cover lower
// ones.
func (r *Renderer) DrawFrame(w *ecs.World, store *asset.Store, player ecs.EntityID) {
	r.screen.Clear()
	items := collect(w, store, player)
	if len(items) == 0 {
		return
	}
	top := items[len(items)-1].top
	for _, d := range items {
		r.fill(d, top)
	}
}

func collect(w *ecs.World, store *asset.Store, player ecs.EntityID) []drawable {
	ids := w.Query(component.CTransform, component.CCollider, component.CMaterial)
	items := make([]drawable, 0, len(ids))
	for _, id := range ids {
		col := w.Get(id, component.CCollider).(component.Collider)
		if col.Sensor {
			continue
		}
		mat, ok := store.Material(w.Get(id, component.CMaterial).(component.Material).Handle)
		if !ok {
			continue
		}
		tr := w.Get(id, component.CTransform).(component.Transform)
		half := col.HalfExtents
		if col.Shape == component.ShapeBall {
			half[0], half[1], half[2] = col.Radius, col.Radius, col.Radius
		}
		p := tr.Translation
		d := drawable{
			id:     id,
			top:    p.Y() + half.Y(),
			minX:   p.X() - half.X(),
			maxX:   p.X() + half.X(),
			minZ:   p.Z() - half.Z(),
			maxZ:   p.Z() + half.Z(),
			mat:    mat,
			ground: w.Has(id, component.CTagGround),
		}
		d.glyph = glyphFor(w, id, player)
		items = append(items, d)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].top != items[j].top {
			return items[i].top < items[j].top
		}
		return items[i].id < items[j].id
	})
	return items
}

// glyphFor picks the marker drawn at an entity's centre.
func glyphFor(w *ecs.World, id, player ecs.EntityID) string {
	switch {
	case id == player:
		if c := w.Get(id, component.CPlayer); c != nil && c.(component.Player).HasCombined() {
			return assets.GlyphPlayerCombined
		}
		return assets.GlyphPlayer
	case w.Has(id, component.CPlayer):
		return assets.GlyphOtherPlayer
	case w.Has(id, component.CCombinable):
		if w.Get(id, component.CCombinable).(component.Combinable).Highlighted {
			return assets.GlyphCandidate
		}
		return assets.GlyphCombinable
	case w.Has(id, component.CTagGround):
		return assets.GlyphGround
	}
	return ""
}

// fill paints every visible cell covered by d's footprint.
func (r *Renderer) fill(d drawable, top float64) {
	c := shade(d.mat.BaseColor, top-d.top, maxShadeDepth)
	style := tcell.StyleDefault.Background(ToTcell(c)).Foreground(colorBackground)

	cam := r.camera
	sx0, sy0, _ := cam.WorldToScreen(d.minX, d.minZ)
	sx1, sy1, _ := cam.WorldToScreen(math.Nextafter(d.maxX, math.Inf(-1)), math.Nextafter(d.maxZ, math.Inf(-1)))
	sx0, sy0 = max(sx0, 0), max(sy0, 0)
	sx1, sy1 = min(sx1, cam.ViewWidth-2), min(sy1, cam.ViewHeight-1)

	for y := sy0; y <= sy1; y++ {
		for x := sx0; x <= sx1; x += 2 {
			glyph := "  "
			if d.ground && (x/2+y)%4 == 0 {
				glyph = assets.GlyphGround
			}
			r.putGlyph(x, y, glyph, style)
		}
	}
	if d.ground || d.glyph == "" {
		return
	}
	cx, cy, ok := cam.WorldToScreen((d.minX+d.maxX)/2, (d.minZ+d.maxZ)/2)
	if ok {
		r.putGlyph(cx, cy, d.glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y), padding narrow glyphs to the two-column cell.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	if runewidth.StringWidth(glyph) >= 2 {
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		r.screen.SetContent(x+1, y, ' ', nil, style)
		return
	}
	for i := 0; i < 2; i++ {
		ch := ' '
		if i < len(runes) {
			ch = runes[i]
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
