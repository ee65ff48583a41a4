package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// keyFor maps a tcell key event to a logical key.
func keyFor(ev *tcell.EventKey) (Key, bool) {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyEnter:
		return KeyConfirm, true
	case tcell.KeyEscape:
		return KeyQuit, true
	}

	// Rune keys.
	switch ev.Rune() {
	case 'w', 'W':
		return KeyUp, true
	case 's', 'S':
		return KeyDown, true
	case 'd', 'D':
		return KeyRight, true
	case 'a', 'A':
		return KeyLeft, true
	case ' ':
		return KeyJump, true
	case 'e', 'E':
		return KeyConfirm, true
	case 'q', 'Q':
		return KeyQuit, true
	}
	return 0, false
}

// Terminal derives held keys from a terminal's key stream. Terminals report
// key presses and auto-repeats but never releases, so a key counts as held
// until no event for it has arrived for a while. After the first event of a
// press that while is the repeat delay, which covers the pause before the OS
// starts auto-repeating; once repeats flow it shrinks to the hold window. A
// key tapped between two polls is held for at least the next frame.
type Terminal struct {
	State
	hold        time.Duration
	repeatDelay time.Duration
	lastSeen    [keyCount]time.Time
	repeating   [keyCount]bool
	tapped      [keyCount]bool
}

// NewTerminal creates a Terminal with the given hold window and initial
// repeat delay. A repeat delay shorter than hold is raised to hold.
func NewTerminal(hold, repeatDelay time.Duration) *Terminal {
	return &Terminal{hold: hold, repeatDelay: max(hold, repeatDelay)}
}

// window is how long k stays held after its last event.
func (t *Terminal) window(k Key) time.Duration {
	if t.repeating[k] {
		return t.hold
	}
	return t.repeatDelay
}

func (t *Terminal) heldAt(k Key, now time.Time) bool {
	return !t.lastSeen[k].IsZero() && now.Sub(t.lastSeen[k]) <= t.window(k)
}

// HandleEvent records one key event. It returns the logical key and false
// when the event is not bound to any control.
func (t *Terminal) HandleEvent(ev *tcell.EventKey) (Key, bool) {
	k, ok := keyFor(ev)
	if !ok {
		return 0, false
	}
	when := ev.When()
	if when.IsZero() {
		when = time.Now()
	}
	t.record(k, when)
	return k, true
}

// record notes an event for k at when. An event arriving while k is still
// held continues the press as a repeat.
func (t *Terminal) record(k Key, when time.Time) {
	t.repeating[k] = t.heldAt(k, when)
	t.lastSeen[k] = when
	t.tapped[k] = true
}

// Poll updates the current frame's pressed set as of now.
func (t *Terminal) Poll(now time.Time) {
	for k := Key(0); k < keyCount; k++ {
		if t.heldAt(k, now) || t.tapped[k] {
			t.Press(k)
		} else {
			t.Release(k)
			t.repeating[k] = false
		}
		t.tapped[k] = false
	}
}
