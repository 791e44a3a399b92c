package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
	"github.com/vovakirdan/petroglyphs/internal/storage"
)

// lockedTitle is shown for entries the profile has not unlocked yet.
const lockedTitle = "(locked)"

// CollectionKeyMap defines the key bindings for the collection view.
type CollectionKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CollectionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CollectionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultCollectionKeyMap returns default key bindings.
func DefaultCollectionKeyMap() CollectionKeyMap {
	return CollectionKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CollectionModel lists the museum entries of one campaign for a profile.
type CollectionModel struct {
	campaign levels.Campaign
	profile  string
	rows     []table.Row
	unlocked int
	progress storage.Progress
	table    table.Model
	help     help.Model
	keys     CollectionKeyMap
	width    int
	height   int
	quitting bool
}

// NewCollectionModel loads the profile's unlocks for the campaign.
func NewCollectionModel(store *storage.Store, c levels.Campaign, profile string, width, height int) (CollectionModel, error) {
	m := CollectionModel{
		campaign: c,
		profile:  profile,
		help:     help.New(),
		keys:     DefaultCollectionKeyMap(),
		width:    width,
		height:   height,
	}

	var entries []storage.UnlockEntry
	if store != nil {
		var err error
		entries, err = store.Unlocked(profile, c.ID)
		if err != nil {
			return m, err
		}
		m.progress, err = store.Progress(profile, c.ID)
		if err != nil {
			return m, err
		}
	}

	m.rows, m.unlocked = CollectionRows(c, entries)
	m.table = m.createTable()
	return m, nil
}

// CollectionRows builds one table row per level, marking levels without an
// unlock entry as locked.
func CollectionRows(c levels.Campaign, entries []storage.UnlockEntry) ([]table.Row, int) {
	byID := make(map[string]storage.UnlockEntry, len(entries))
	for _, e := range entries {
		byID[e.LevelID] = e
	}

	rows := make([]table.Row, len(c.Levels))
	unlocked := 0
	for i, lvl := range c.Levels {
		title, date := lockedTitle, ""
		if e, ok := byID[lvl.ID]; ok {
			unlocked++
			title = lvl.Lore.Title
			if title == "" {
				title = e.Title
			}
			if !e.UnlockedAt.IsZero() {
				date = e.UnlockedAt.Format("Jan 02 15:04")
			}
		}
		rows[i] = table.Row{fmt.Sprintf("%d", i+1), lvl.Name, title, date}
	}
	return rows, unlocked
}

// createTable creates a new table with appropriate columns.
func (m *CollectionModel) createTable() table.Model {
	titleWidth := max(20, m.width-4-4-24-14-8)
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 24},
		{Title: "Petroglyph", Width: titleWidth},
		{Title: "Unlocked", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#e3c28c")).
		Background(lipgloss.Color("#5b3c29")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the collection model.
func (m CollectionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the collection view.
func (m CollectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the collection.
func (m CollectionModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#e3c28c"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("MUSEUM - %s", m.campaign.Name)))
	b.WriteString("\n")

	summary := fmt.Sprintf("%s: %d/%d petroglyphs unlocked", m.profile, m.unlocked, len(m.rows))
	if m.progress.Completed {
		summary += ", campaign completed"
	}
	b.WriteString(helpStyle.Render(summary))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunCollection shows the collection until the user quits.
func RunCollection(m CollectionModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
