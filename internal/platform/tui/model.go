package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/petroglyphs/internal/config"
	"github.com/vovakirdan/petroglyphs/internal/core"
	"github.com/vovakirdan/petroglyphs/internal/games/quest"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
	"github.com/vovakirdan/petroglyphs/internal/storage"
)

// statusTicks is how long a status message stays in the help bar.
const statusTicks = 180

// Options configures a game model.
type Options struct {
	Campaign   levels.Campaign
	Quest      config.QuestConfig
	Runtime    core.RuntimeConfig
	Profile    string
	StartLevel int
	Store      *storage.Store  // Optional; unlocks are not saved without it
	Logger     *log.Logger     // Optional
	Watcher    *levels.Watcher // Optional; enables campaign hot reload
	LevelsRoot string          // Directory searched when reloading
}

// campaignChangedMsg is sent when the watcher reports a changed file.
type campaignChangedMsg struct{ path string }

// watchErrMsg carries a watcher error.
type watchErrMsg struct{ err error }

// Model is the Bubble Tea model for playing a campaign.
type Model struct {
	game        *quest.Game
	screen      *core.Screen
	latch       *core.InputLatch
	keys        KeyMap
	help        help.Model
	recorder    *quest.Recorder
	logger      *log.Logger
	watcher     *levels.Watcher
	root        string
	config      core.RuntimeConfig
	tick        int
	status      string
	statusUntil int
	quitting    bool
}

// NewModel creates a new Bubble Tea model for the given campaign.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game := quest.New(opts.Campaign, opts.Quest.Params())
	game.SetStartLevel(opts.StartLevel)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-1)),
		latch:    core.NewInputLatch(opts.Quest.Input.HoldTicks),
		keys:     DefaultKeyMap(),
		help:     h,
		recorder: quest.NewRecorder(opts.Store, logger, opts.Profile),
		logger:   logger,
		watcher:  opts.Watcher,
		root:     opts.LevelsRoot,
		config:   cfg,
	}
}

// Game returns the wrapped game.
func (m Model) Game() *quest.Game {
	return m.game
}

// Init starts the tick loop and the campaign watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case campaignChangedMsg:
		m.reloadCampaign(msg.path)
		return m, waitForChange(m.watcher)

	case watchErrMsg:
		m.logger.Warn("campaign watcher error", "error", msg.err)
		return m, waitForChange(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.Latch(msg, m.latch, m.tick) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. Game state is kept; the
// playfield is rescaled to the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(1, msg.Height-1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick samples input once and advances the game by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.latch.Sample(m.tick)
	m.tick++

	res, err := m.game.Step(frame)
	if err != nil {
		m.logger.Error("step failed", "error", err)
		m.setStatus("error: " + err.Error())
	}
	for _, e := range res.Events {
		m.handleEvent(e)
	}

	if res.State.Screen != quest.ScreenPlaying {
		// Walking keys held across a screen change must not leak into
		// the next level.
		m.latch.Release(core.ActionLeft)
		m.latch.Release(core.ActionRight)
	}

	return m, tickCmd(m.config.TickRate)
}

// handleEvent logs session events and persists museum progress.
func (m *Model) handleEvent(e sim.Event) {
	if status := m.recorder.Record(m.game.Campaign(), e); status != "" {
		m.setStatus(status)
	}
}

// reloadCampaign re-reads the current campaign after a file change. A
// changed file that no longer loads keeps the running campaign.
func (m *Model) reloadCampaign(path string) {
	if _, err := os.Stat(path); err == nil {
		if _, err := levels.NewLoader(m.root).LoadFile(path); err != nil {
			m.logger.Warn("campaign reload failed", "path", path, "error", err)
			m.setStatus("reload failed: " + err.Error())
			return
		}
	}

	id := m.game.Campaign().ID
	c, err := levels.Resolve(id, m.root)
	if err != nil {
		m.logger.Warn("campaign reload failed", "path", path, "error", err)
		m.setStatus("reload failed: " + err.Error())
		return
	}
	m.game.Reload(c)
	m.logger.Info("campaign reloaded", "campaign", c.ID, "path", path, "levels", c.Count())
	m.setStatus("campaign reloaded")
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = m.tick + statusTicks
}

// waitForChange blocks until the watcher reports a change or an error.
func waitForChange(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return campaignChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := filepath.Join(config.HomeDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", quest.ID, timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.setStatus("screenshot saved to " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if lore, ok := m.game.Lore(); ok {
		body = RenderMuseum(MuseumPanel{
			Campaign: m.game.Campaign(),
			Level:    m.game.Session().Level(),
			Lore:     lore,
			Width:    m.screen.Width(),
			Height:   m.screen.Height(),
		})
	} else {
		m.game.Render(m.screen)
		body = RenderScreen(m.screen)
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" && m.tick < m.statusUntil {
		b.WriteString(statusStyle.Render(m.status))
	} else {
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}
	return b.String()
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
