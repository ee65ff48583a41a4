package asset

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette colours used by the bootstrap factories.
var (
	ColorWhite     = colorful.Color{R: 1, G: 1, B: 1}
	ColorBlue      = colorful.Color{R: 0, G: 0, B: 1}
	ColorPink      = colorful.Color{R: 1, G: 0.08, B: 0.58}
	ColorHighlight = colorful.Color{R: 1, G: 1, B: 0}
)

// combinedHueShift is the hue rotation, in degrees, applied to an absorbed
// object's colour.
const combinedHueShift = 180.0

// CombinedVariant derives the colour a player takes after absorbing an object
// of colour c: the hue is rotated half way round the HSV wheel while
// saturation and value are kept. Equal inputs always give equal outputs.
func CombinedVariant(c colorful.Color) colorful.Color {
	h, s, v := c.Clamped().Hsv()
	h = math.Mod(h+combinedHueShift, 360)
	return colorful.Hsv(h, s, v).Clamped()
}

// ParseColor accepts "#rrggbb" hex strings.
func ParseColor(hex string) (colorful.Color, error) {
	return colorful.Hex(hex)
}
