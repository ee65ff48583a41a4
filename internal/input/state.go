// Package input turns key activity into the per-frame pressed / just-pressed
// view the simulation systems poll.
package input

// Key is a logical control, independent of the physical key bound to it.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyJump
	KeyConfirm
	KeyQuit
	keyCount
)

var keyNames = [keyCount]string{"up", "down", "left", "right", "jump", "confirm", "quit"}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}

// Source is what systems read once per frame.
type Source interface {
	// Pressed reports whether k is held this frame.
	Pressed(k Key) bool
	// JustPressed reports whether k went from released to held this frame.
	JustPressed(k Key) bool
}

// State is a Source driven explicitly: Press and Release change the current
// frame, Advance closes it. Nothing is buffered across frames.
type State struct {
	cur  [keyCount]bool
	prev [keyCount]bool
}

// Press marks k as held in the current frame.
func (s *State) Press(k Key) {
	if k < keyCount {
		s.cur[k] = true
	}
}

// Release marks k as not held in the current frame.
func (s *State) Release(k Key) {
	if k < keyCount {
		s.cur[k] = false
	}
}

// Advance ends the frame: the current pressed set becomes the previous one.
func (s *State) Advance() {
	s.prev = s.cur
}

// Pressed implements Source.
func (s *State) Pressed(k Key) bool {
	return k < keyCount && s.cur[k]
}

// JustPressed implements Source.
func (s *State) JustPressed(k Key) bool {
	return k < keyCount && s.cur[k] && !s.prev[k]
}
