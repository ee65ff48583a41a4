// Package ssh adapts SSH sessions into terminals a tcell screen can drive.
package ssh

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is assumed when the client does not send TERM.
const DefaultTerm = "xterm-256color"

// SessionTty implements tcell.Tty on top of one SSH session. Window changes
// from the client are applied as they arrive until the session ends.
type SessionTty struct {
	rw     io.ReadWriteCloser
	done   <-chan struct{}
	winCh  <-chan gossh.Window
	mu     sync.Mutex
	window gossh.Window
	onSize func()
	start  sync.Once
}

// NewSessionTty wraps s. pty is the client's initial PTY request and winCh
// its window-change stream, both from s.Pty().
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return newTty(s, s.Context().Done(), pty.Window, winCh)
}

func newTty(rw io.ReadWriteCloser, done <-chan struct{}, win gossh.Window, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{rw: rw, done: done, window: win, winCh: winCh}
}

// Read reads keyboard input from the client.
func (t *SessionTty) Read(b []byte) (int, error) { return t.rw.Read(b) }

// Write sends rendered output to the client.
func (t *SessionTty) Write(b []byte) (int, error) { return t.rw.Write(b) }

// Close closes the session channel.
func (t *SessionTty) Close() error { return t.rw.Close() }

// Start, Stop and Drain have nothing to do: the channel is already open and
// writes are not buffered.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the latest size the client reported.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb to run after every window change. The first call
// starts following the client's window-change stream; later calls replace cb.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onSize = cb
	t.mu.Unlock()
	t.start.Do(func() { go t.follow() })
}

func (t *SessionTty) follow() {
	for {
		select {
		case <-t.done:
			return
		default:
		}
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.onSize
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}

// termMu serialises screen creation: tcell reads TERM from the process
// environment, so it is set per session just before.
var termMu sync.Mutex

// NewScreen builds and initialises a tcell screen for terminal type term on
// the session's PTY. The caller finalises it. Sessions without a PTY are
// rejected.
func NewScreen(s gossh.Session, term string) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, fmt.Errorf("no PTY requested")
	}

	tty := NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal setup: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	return screen, nil
}

// SessionTerm returns the terminal type the client asked for: the PTY
// request's, then TERM from the session environment, then DefaultTerm.
func SessionTerm(s gossh.Session) string {
	if pty, _, ok := s.Pty(); ok && pty.Term != "" {
		return pty.Term
	}
	return TermFromEnv(s.Environ())
}

// TermFromEnv returns the TERM entry of env, or DefaultTerm.
func TermFromEnv(env []string) string {
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, "TERM="); ok && v != "" {
			return v
		}
	}
	return DefaultTerm
}
