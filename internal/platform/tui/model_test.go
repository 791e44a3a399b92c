package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/petroglyphs/internal/config"
	"github.com/vovakirdan/petroglyphs/internal/core"
	"github.com/vovakirdan/petroglyphs/internal/games/quest"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
	"github.com/vovakirdan/petroglyphs/internal/storage"
)

func testCampaign() levels.Campaign {
	return levels.Campaign{
		ID:   "test",
		Name: "Test Trail",
		Levels: []levels.Level{
			{
				ID:        "walk",
				Name:      "Walk",
				Platforms: []sim.Platform{sim.NewPlatform(0, 550, 800, 50)},
				Fragments: []sim.Vec{{X: 60, Y: 520}},
				Lore:      levels.Lore{Title: "The Walker", Description: "A figure in motion.", Image: "walker.png"},
			},
			{
				ID:        "second",
				Name:      "Second",
				Platforms: []sim.Platform{sim.NewPlatform(0, 550, 800, 50)},
				Fragments: []sim.Vec{{X: 60, Y: 520}},
				Lore:      levels.Lore{Title: "The Second"},
			},
		},
	}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	return NewModel(Options{
		Campaign: testCampaign(),
		Quest:    config.DefaultQuestConfig(),
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60},
		Profile:  "tester",
		Store:    store,
	})
}

// send applies a message and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return send(t, m, TickMsg{})
}

func TestModelStartAndWalk(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)
	if m.Game().Screen() != quest.ScreenPlaying {
		t.Fatalf("screen = %v, expected playing", m.Game().Screen())
	}

	x := m.Game().Snapshot().Player.X
	m = send(t, m, runeKey('d'))
	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}
	if got := m.Game().Snapshot().Player.X; got <= x {
		t.Errorf("player x = %v, expected to move right from %v", got, x)
	}
}

func TestModelHoldExpires(t *testing.T) {
	const hold = 4
	qcfg := config.DefaultQuestConfig()
	qcfg.Input.HoldTicks = hold
	m := NewModel(Options{
		Campaign: testCampaign(),
		Quest:    qcfg,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60},
	})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)

	m = send(t, m, runeKey('a'))
	for i := 0; i < hold+2; i++ {
		m = tick(t, m)
	}

	x := m.Game().Snapshot().Player.X
	m = tick(t, m)
	if got := m.Game().Snapshot().Player.X; got != x {
		t.Errorf("player kept walking after the hold window, x %v -> %v", x, got)
	}
}

func TestModelPersistsUnlocks(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "museum.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)

	for i := 0; i < 60 && m.Game().Screen() == quest.ScreenPlaying; i++ {
		m = send(t, m, runeKey('d'))
		m = tick(t, m)
	}
	if m.Game().Screen() != quest.ScreenMuseum {
		t.Fatalf("screen = %v, expected museum", m.Game().Screen())
	}

	view := m.View()
	if !strings.Contains(view, "The Walker") || !strings.Contains(view, "walker.png") {
		t.Error("museum view should show the petroglyph entry")
	}

	entries, err := store.Unlocked("tester", "test")
	if err != nil {
		t.Fatalf("Unlocked failed: %v", err)
	}
	if len(entries) != 1 || entries[0].LevelID != "walk" {
		t.Errorf("entries = %+v, expected the first level", entries)
	}

	p, err := store.Progress("tester", "test")
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if p.FurthestLevel != 1 {
		t.Errorf("furthest level = %d, expected 1", p.FurthestLevel)
	}

	// Holding right into the museum must not carry over to the next level.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)
	x := m.Game().Snapshot().Player.X
	m = tick(t, m)
	if m.Game().Snapshot().Player.X != x {
		t.Error("walking key leaked into the next level")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeKeepsState(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)
	m = send(t, m, runeKey('d'))
	m = tick(t, m)
	x := m.Game().Snapshot().Player.X

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Game().Snapshot().Player.X != x {
		t.Error("resize must not reset the game")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
}

func TestModelReloadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	write := func(data string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	const valid = `id: test
name: Edited Trail
levels:
  - id: walk
    platforms: [{x: 0, y: 550, w: 800, h: 50}]
    fragments: [{x: 60, y: 520}]
`

	m := NewModel(Options{
		Campaign:   testCampaign(),
		Quest:      config.DefaultQuestConfig(),
		Runtime:    core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60},
		LevelsRoot: dir,
	})

	write(valid)
	m = send(t, m, campaignChangedMsg{path: path})
	if got := m.Game().Campaign().Name; got != "Edited Trail" {
		t.Fatalf("campaign = %q, expected the edited file", got)
	}

	write(strings.Replace(valid, "fragments: [{x: 60, y: 520}]", "fragments: []", 1))
	m = send(t, m, campaignChangedMsg{path: path})
	if got := m.Game().Campaign().Name; got != "Edited Trail" {
		t.Errorf("campaign = %q, broken file must not replace it", got)
	}
	if !strings.Contains(m.status, "reload failed") || !strings.Contains(m.status, "NO_FRAGMENTS") {
		t.Errorf("status = %q, expected the validation error", m.status)
	}
}

func TestRenderScreenStyles(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetColored(0, 0, '▓', core.ColorRock)
	s.SetColored(1, 0, '◆', core.ColorSand)

	out := RenderScreen(s)
	if !strings.Contains(out, "▓") || !strings.Contains(out, "◆") {
		t.Errorf("rendered output lost runes: %q", out)
	}
}

func TestCollectionRows(t *testing.T) {
	c := testCampaign()
	rows, unlocked := CollectionRows(c, []storage.UnlockEntry{
		{Profile: "tester", CampaignID: "test", LevelIndex: 0, LevelID: "walk", Title: "The Walker"},
	})

	if unlocked != 1 || len(rows) != 2 {
		t.Fatalf("unlocked=%d rows=%d", unlocked, len(rows))
	}
	if rows[0][2] != "The Walker" {
		t.Errorf("row 0 title = %q", rows[0][2])
	}
	if rows[1][2] != lockedTitle {
		t.Errorf("row 1 title = %q, expected locked", rows[1][2])
	}
}

func TestSessionProfile(t *testing.T) {
	if SessionProfile("ana") != "ssh:ana" {
		t.Error("unexpected profile for named user")
	}
	if SessionProfile("") != "ssh:anonymous" {
		t.Error("unexpected profile for empty user")
	}
}
