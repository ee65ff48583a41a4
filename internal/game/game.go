// Package game is the terminal front end: it feeds key events into a
// sandbox, steps it on a fixed tick and draws the result.
package game

import (
	"context"
	"fmt"
	"time"

	"cube-combine/assets"
	"cube-combine/internal/component"
	"cube-combine/internal/config"
	"cube-combine/internal/input"
	"cube-combine/internal/journal"
	"cube-combine/internal/physics"
	"cube-combine/internal/render"
	"cube-combine/internal/scene"
	"cube-combine/internal/sim"
	"cube-combine/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// maxMessages caps the message log.
const maxMessages = 50

// Game runs one sandbox on one screen.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	cfg      config.Config
	log      zerolog.Logger
	sim      *sim.Sim
	keys     *input.Terminal
	recorder *journal.Recorder
	messages []string
	quit     bool
}

// New builds a game on screen. The caller owns the screen: it has already
// been initialised and is finalised by the caller after Run returns.
func New(screen tcell.Screen, cfg config.Config, sc scene.Scene, logger zerolog.Logger) *Game {
	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		cfg:      cfg,
		log:      logger,
		sim:      sim.New(cfg, sc, logger),
		keys:     input.NewTerminal(cfg.HoldWindow(), cfg.RepeatDelay()),
		recorder: journal.NewRecorder(time.Now()),
	}
	for _, m := range assets.IntroMessages {
		g.addMessage(m)
	}
	return g
}

// Run is the main loop. It returns when the player quits, the screen closes
// or ctx is cancelled, after writing the run to the journal.
func (g *Game) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 32)
	go func() {
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.cfg.TickInterval())
	defer ticker.Stop()

	g.draw()
	for !g.quit {
		select {
		case <-ctx.Done():
			g.quit = true
		case ev, ok := <-events:
			if !ok {
				g.quit = true
				break
			}
			g.handleEvent(ev)
		case now := <-ticker.C:
			g.step(now)
			g.draw()
		}
	}
	return g.finish(time.Now())
}

// handleEvent applies one terminal event. Quit takes effect immediately.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			g.quit = true
			return
		}
		if k, ok := g.keys.HandleEvent(ev); ok && k == input.KeyQuit {
			g.quit = true
		}
	}
}

// step advances the sandbox by one frame as of now.
func (g *Game) step(now time.Time) sim.Report {
	g.keys.Poll(now)
	r := g.sim.Step(g.keys)
	g.recorder.Observe(r)
	g.narrate(r)
	g.keys.Advance()
	return r
}

// narrate turns the local player's share of a report into log messages.
func (g *Game) narrate(r sim.Report) {
	player := g.sim.Player()
	for _, c := range r.Contacts {
		if c.Player != player {
			continue
		}
		name := g.categoryOf(c)
		if c.Kind == physics.Begin {
			g.addMessage(fmt.Sprintf(assets.MsgTouch, name))
		} else {
			g.addMessage(fmt.Sprintf(assets.MsgLeave, name))
		}
	}
	for _, id := range r.Jumps {
		if id == player {
			g.addMessage(assets.MsgJump)
		}
	}
	combined := false
	for _, c := range r.Combines {
		if c.Player == player {
			combined = true
			g.addMessage(fmt.Sprintf(assets.MsgCombined, c.Category))
		}
	}
	if g.keys.JustPressed(input.KeyConfirm) && !combined {
		if st := render.StatusOf(g.sim.World(), player); st.Combined != "" {
			g.addMessage(fmt.Sprintf(assets.MsgAlready, st.Combined))
		} else {
			g.addMessage(assets.MsgNoTarget)
		}
	}
}

// categoryOf names the object in a contact, or "object" once it is gone.
func (g *Game) categoryOf(c system.Contact) string {
	if comp := g.sim.World().Get(c.Target, component.CCombinable); comp != nil {
		return comp.(component.Combinable).Category.String()
	}
	return "object"
}

func (g *Game) draw() {
	st := render.StatusOf(g.sim.World(), g.sim.Player())
	g.renderer.CenterOn(st.X, st.Z)
	g.renderer.DrawFrame(g.sim.World(), g.sim.Assets(), g.sim.Player())
	g.renderer.DrawHUD(st, g.messages)
}

// finish records the run in the journal when enabled. A journal failure is
// logged and returned, it never loses the session.
func (g *Game) finish(now time.Time) error {
	log := g.recorder.Finish(now)
	g.log.Info().
		Uint64("frames", log.Frames).
		Int("jumps", log.Jumps).
		Int("combines", len(log.Combines)).
		Dur("duration", log.Duration).
		Msg("run finished")
	if !g.cfg.Journal.Enabled {
		return nil
	}
	if err := journal.Append(g.cfg.Journal.Dir, log); err != nil {
		g.log.Warn().Err(err).Msg("journal write failed")
		return fmt.Errorf("journal: %w", err)
	}
	return nil
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}
