package render

import (
	"fmt"

	"cube-combine/internal/component"
	"cube-combine/internal/ecs"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Status is the player summary shown on the HUD's first line.
type Status struct {
	X, Y, Z   float64
	Grounded  bool
	Candidate string // category of the touched object, "" if none
	Combined  string // category absorbed, "" if none
}

// StatusOf reads the player's HUD status from the world. A candidate that
// no longer resolves shows as none.
func StatusOf(w *ecs.World, player ecs.EntityID) Status {
	var s Status
	if c := w.Get(player, component.CTransform); c != nil {
		p := c.(component.Transform).Translation
		s.X, s.Y, s.Z = p.X(), p.Y(), p.Z()
	}
	if c := w.Get(player, component.CGrounded); c != nil {
		s.Grounded = c.(component.Grounded).Value
	}
	if c := w.Get(player, component.CPlayer); c != nil {
		p := c.(component.Player)
		if p.HasCombined() {
			s.Combined = p.CombinedWith.String()
		}
		if cand := p.InteractionCandidate; cand != ecs.NilEntity && w.Alive(cand) {
			if cc := w.Get(cand, component.CCombinable); cc != nil {
				s.Candidate = cc.(component.Combinable).Category.String()
			}
		}
	}
	return s
}

// Line formats the status for the HUD.
func (s Status) Line() string {
	ground := "airborne"
	if s.Grounded {
		ground = "grounded"
	}
	cand := "-"
	if s.Candidate != "" {
		cand = s.Candidate + " [e] combine"
	}
	comb := "-"
	if s.Combined != "" {
		comb = s.Combined
	}
	return fmt.Sprintf("pos %6.2f %5.2f %6.2f  %s  touching: %s  combined: %s",
		s.X, s.Y, s.Z, ground, cand, comb)
}

// helpLine lists the controls.
const helpLine = "arrows/wasd move  space jump  e/enter combine  esc/q quit"

// DrawHUD renders the status bar and the most recent messages at the bottom
// of the screen, then shows the frame.
func (r *Renderer) DrawHUD(status Status, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, colorSeparator)
	r.drawText(0, hudY+1, status.Line(), tcell.StyleDefault.Foreground(colorStatus))

	start := max(len(messages)-2, 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(colorMessage))
	}
	r.drawText(0, hudY+4, helpLine, tcell.StyleDefault.Foreground(colorSeparator))

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, truncated to the screen width. Wide
// runes advance two columns.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	if x >= w {
		return
	}
	text = runewidth.Truncate(text, w-x, "…")
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
