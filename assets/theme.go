// Package assets holds the built-in scene and the glyphs and texts of the
// terminal front end.
package assets

// Glyphs drawn at the centre of an entity's footprint.
const (
	GlyphPlayer         = "🧊"
	GlyphPlayerCombined = "📦"
	GlyphOtherPlayer    = "🔷"
	GlyphCombinable     = "▪"
	GlyphCandidate      = "✨"
	GlyphGround         = "·"
)

// IntroMessages open every run's message log.
var IntroMessages = []string{
	"You are a small blue cube on a very large floor.",
	"Walk into the pink box and press e to absorb it.",
}

// Message templates used by the game loop.
const (
	MsgTouch    = "You touch a %s. It glows."
	MsgLeave    = "You step away from the %s."
	MsgCombined = "You absorb the %s and take its shape!"
	MsgJump     = "Boing."
	MsgLanded   = "You land."
	MsgNoTarget = "There is nothing here to absorb."
	MsgAlready  = "You already carry a %s."
)
