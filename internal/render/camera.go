package render

import "math"

// CellsPerUnit is how many terminal rows one world unit spans. Columns are
// doubled so a cell is roughly square.
const CellsPerUnit = 2

// Camera maps the world's XZ plane onto the terminal, looking straight down:
// +X is right on screen, +Z is down.
type Camera struct {
	CenterX    float64 // world X at the middle of the view
	CenterZ    float64 // world Z at the middle of the view
	ViewWidth  int     // in terminal columns
	ViewHeight int     // in terminal rows
}

// NewCamera creates a camera centred on (x, z).
func NewCamera(x, z float64, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(x, z)
	return c
}

// Center moves the camera so world (x, z) is in the middle of the view.
func (c *Camera) Center(x, z float64) {
	c.CenterX, c.CenterZ = x, z
}

// cols is the number of two-column cells across the view.
func (c *Camera) cols() int { return c.ViewWidth / 2 }

// WorldToScreen converts world (x, z) to the top-left column and row of the
// cell containing it. visible is false outside the viewport.
func (c *Camera) WorldToScreen(x, z float64) (sx, sy int, visible bool) {
	cx := int(math.Floor((x-c.CenterX)*CellsPerUnit)) + c.cols()/2
	cy := int(math.Floor((z-c.CenterZ)*CellsPerUnit)) + c.ViewHeight/2
	sx, sy = cx*2, cy
	visible = cx >= 0 && cx < c.cols() && cy >= 0 && cy < c.ViewHeight
	return
}

// ScreenToWorld returns the world (x, z) at the centre of the cell holding
// screen position (sx, sy).
func (c *Camera) ScreenToWorld(sx, sy int) (x, z float64) {
	cx := sx/2 - c.cols()/2
	cy := sy - c.ViewHeight/2
	x = c.CenterX + (float64(cx)+0.5)/CellsPerUnit
	z = c.CenterZ + (float64(cy)+0.5)/CellsPerUnit
	return
}
