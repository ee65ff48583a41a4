package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Fixed UI colours.
var (
	colorBackground = tcell.ColorBlack
	colorSeparator  = tcell.ColorGray
	colorStatus     = tcell.ColorWhite
	colorMessage    = tcell.ColorLightYellow
	colorShadow     = colorful.Color{R: 0, G: 0, B: 0}
)

// ToTcell converts a material colour to a true-colour terminal colour.
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// shade darkens c for surfaces far below the highest thing drawn, so height
// reads on a top-down view. depth is in world units below the top; anything
// deeper than maxDepth gets the darkest shade.
func shade(c colorful.Color, depth, maxDepth float64) colorful.Color {
	if depth <= 0 || maxDepth <= 0 {
		return c
	}
	t := depth / maxDepth
	if t > 1 {
		t = 1
	}
	return c.BlendLab(colorShadow, t*0.6).Clamped()
}
