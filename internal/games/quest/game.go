// Package quest implements the petroglyph platformer.
// The player guides a guardian across platform layouts, collects stone
// fragments and unlocks a museum entry for every completed level.
package quest

import (
	"fmt"

	"github.com/vovakirdan/petroglyphs/internal/core"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
)

// ID is the game identifier used for storage and logging.
const ID = "quest"

// Screen is the presentation state derived from the session phase.
type Screen int

const (
	ScreenStart    Screen = iota // Title, waiting for Enter
	ScreenPlaying                // Level in progress
	ScreenMuseum                 // Level complete, petroglyph entry shown
	ScreenGameOver               // Fell out, waiting for retry
	ScreenWin                    // Every level completed
)

// String returns a human-readable name for the screen.
func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenMuseum:
		return "museum"
	case ScreenGameOver:
		return "game-over"
	case ScreenWin:
		return "win"
	default:
		return "unknown"
	}
}

// State is a compact summary of the game for drivers and the HUD.
type State struct {
	Screen    Screen
	Level     int
	LevelName string
	Collected int
	Total     int
	Paused    bool
}

// StepResult is returned by Step.
type StepResult struct {
	Outcome sim.Outcome
	Events  []sim.Event // Events emitted during this step, in order
	State   State
}

// Game drives a sim.Session through the screens of a campaign.
type Game struct {
	campaign   levels.Campaign
	session    *sim.Session
	startLevel int
	paused     bool
	events     []sim.Event
}

// New creates a game on the start screen.
func New(c levels.Campaign, params sim.Params) *Game {
	g := &Game{campaign: c}
	g.session = sim.NewSession(&g.campaign, params)
	g.session.OnEvent(func(e sim.Event) {
		g.events = append(g.events, e)
	})
	return g
}

// Title returns the display name of the campaign.
func (g *Game) Title() string {
	return g.campaign.Name
}

// Campaign returns the campaign currently used for new loads.
func (g *Game) Campaign() *levels.Campaign {
	return &g.campaign
}

// Session exposes the underlying simulation session.
func (g *Game) Session() *sim.Session {
	return g.session
}

// SetStartLevel selects the level loaded from the start screen, used to
// continue a saved run. Out of range values are clamped.
func (g *Game) SetStartLevel(index int) {
	g.startLevel = core.Clamp(index, 0, core.Max(0, g.campaign.Count()-1))
}

// StartLevel returns the level loaded from the start screen.
func (g *Game) StartLevel() int {
	return g.startLevel
}

// Reload swaps in a new version of the campaign. A running attempt keeps
// its layout; the next load uses the new levels.
func (g *Game) Reload(c levels.Campaign) {
	g.campaign = c
	g.session.SetSource(&g.campaign)
	g.startLevel = core.Clamp(g.startLevel, 0, core.Max(0, c.Count()-1))
}

// Screen returns the current presentation state.
func (g *Game) Screen() Screen {
	switch g.session.Phase() {
	case sim.PhaseRunning:
		return ScreenPlaying
	case sim.PhaseLevelComplete:
		return ScreenMuseum
	case sim.PhaseGameOver:
		return ScreenGameOver
	case sim.PhaseWon:
		return ScreenWin
	default:
		return ScreenStart
	}
}

// Paused reports whether the running level is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Level returns the current level definition.
func (g *Game) Level() (levels.Level, bool) {
	return g.campaign.Level(g.session.Level())
}

// Lore returns the petroglyph entry of the level just completed.
func (g *Game) Lore() (levels.Lore, bool) {
	if g.session.Phase() != sim.PhaseLevelComplete {
		return levels.Lore{}, false
	}
	lvl, ok := g.Level()
	return lvl.Lore, ok
}

// Snapshot returns the frame state of the session.
func (g *Game) Snapshot() sim.Snapshot {
	return g.session.Snapshot()
}

// State returns the HUD summary.
func (g *Game) State() State {
	st := State{
		Screen: g.Screen(),
		Level:  g.session.Level(),
		Paused: g.paused,
	}
	if lvl, ok := g.Level(); ok {
		st.LevelName = lvl.Name
	}
	if a := g.session.Attempt(); a != nil {
		st.Collected = a.Collected
		st.Total = a.Total()
	}
	return st
}

// Step applies one frame of input. Menu actions move between screens;
// movement actions drive the simulation while a level is running.
func (g *Game) Step(in core.InputFrame) (StepResult, error) {
	var (
		out sim.Outcome
		err error
	)

	switch g.Screen() {
	case ScreenStart:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			err = g.session.Load(g.startLevel)
		}
	case ScreenPlaying:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if !g.paused {
			out = g.session.Step(sim.Input{
				Left:  in.Has(core.ActionLeft),
				Right: in.Has(core.ActionRight),
				Jump:  in.Has(core.ActionJump),
			})
		}
	case ScreenMuseum:
		if in.Has(core.ActionConfirm) {
			err = g.session.Advance()
		}
	case ScreenGameOver:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			err = g.session.Retry()
		}
	case ScreenWin:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.startLevel = 0
			err = g.session.Restart()
		}
	}

	if g.Screen() != ScreenPlaying {
		g.paused = false
	}

	res := StepResult{Outcome: out, Events: g.events, State: g.State()}
	g.events = nil
	if err != nil {
		return res, fmt.Errorf("quest: %w", err)
	}
	return res, nil
}
