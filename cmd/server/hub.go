package main

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"cube-combine/internal/config"
	"cube-combine/internal/game"
	"cube-combine/internal/scene"
	internalssh "cube-combine/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
)

// maxNameBytes caps a player name in logs and greetings.
const maxNameBytes = 16

// allowedTerms are the terminal types a session may ask for. TERM is written
// into the process environment before tcell loads its terminfo entry, so
// only known names get that far.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"xterm-color":           true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
	"alacritty":             true,
}

// sanitizeName drops control characters and caps the result at maxNameBytes
// without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// hub admits SSH sessions up to a cap and runs one independent sandbox per
// session.
type hub struct {
	cfg    config.Config
	scene  scene.Scene
	log    zerolog.Logger
	run    func(s gossh.Session, logger zerolog.Logger) error
	mu     sync.Mutex
	nextID int
	active map[int]string
}

func newHub(cfg config.Config, sc scene.Scene, logger zerolog.Logger) *hub {
	h := &hub{
		cfg:    cfg,
		scene:  sc,
		log:    logger,
		active: make(map[int]string),
	}
	h.run = h.play
	return h
}

// join registers a session. ok is false when the hub is full.
func (h *hub) join(name string) (id int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.active) >= h.cfg.Server.MaxSessions {
		return 0, false
	}
	id = h.nextID
	h.nextID++
	h.active[id] = name
	return id, true
}

func (h *hub) leave(id int) {
	h.mu.Lock()
	delete(h.active, id)
	h.mu.Unlock()
}

// count returns the number of sessions currently playing.
func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.active)
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the duration of the game so the SSH session stays open.
func (h *hub) handleSession(s gossh.Session) {
	name := sanitizeName(s.User())
	if name == "" {
		name = "guest"
	}
	if _, _, ok := s.Pty(); !ok {
		fmt.Fprintf(s, "This game needs a terminal. Connect with: ssh -t -p %d <host>\n", h.cfg.Server.Port)
		_ = s.Exit(1)
		return
	}
	term := internalssh.SessionTerm(s)
	if !allowedTerms[term] {
		h.log.Warn().Str("user", name).Str("term", term).Msg("terminal rejected")
		fmt.Fprintf(s, "Unsupported terminal %q. Try TERM=xterm-256color.\n", term)
		_ = s.Exit(1)
		return
	}

	id, ok := h.join(name)
	if !ok {
		h.log.Warn().Str("user", name).Msg("server full")
		fmt.Fprintln(s, "The server is full, try again later.")
		_ = s.Exit(1)
		return
	}
	defer h.leave(id)

	logger := h.log.With().Int("session", id).Str("user", name).Logger()
	logger.Info().Str("remote", s.RemoteAddr().String()).Int("active", h.count()).Msg("session joined")
	if err := h.run(s, logger); err != nil {
		logger.Error().Err(err).Msg("session failed")
		fmt.Fprintf(s, "Session failed: %v\n", err)
		_ = s.Exit(1)
		return
	}
	logger.Info().Msg("session left")
	_ = s.Exit(0)
}

// play runs one sandbox on the session's PTY until the player quits or the
// connection drops.
func (h *hub) play(s gossh.Session, logger zerolog.Logger) error {
	screen, err := internalssh.NewScreen(s, internalssh.SessionTerm(s))
	if err != nil {
		return err
	}
	defer screen.Fini()
	return game.New(screen, h.cfg, h.scene, logger).Run(s.Context())
}
