package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/levels"
)

// museumMaxWidth caps the panel width on wide terminals.
const museumMaxWidth = 72

var (
	museumTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#e3c28c")).
				MarginBottom(1)

	museumPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7a5a48")).
				Padding(1, 2)

	museumDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// MuseumPanel is the input of RenderMuseum.
type MuseumPanel struct {
	Campaign *levels.Campaign
	Level    int // Index of the completed level
	Lore     levels.Lore
	Width    int
	Height   int
}

// RenderMuseum renders the petroglyph entry unlocked by a completed level,
// centered in the given area.
func RenderMuseum(p MuseumPanel) string {
	inner := min(museumMaxWidth, p.Width-8)
	if inner < 20 {
		inner = 20
	}

	title := p.Lore.Title
	if title == "" {
		title = "Level complete"
	}

	var b strings.Builder
	b.WriteString(museumDimStyle.Render(fmt.Sprintf("MUSEUM  ·  %s  ·  %d/%d",
		p.Campaign.Name, p.Level+1, p.Campaign.Count())))
	b.WriteString("\n\n")
	b.WriteString(museumTitleStyle.Render(title))
	b.WriteString("\n")
	if p.Lore.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(p.Lore.Description))
		b.WriteString("\n")
	}
	if p.Lore.Image != "" {
		b.WriteString("\n")
		b.WriteString(museumDimStyle.Render("Image: " + p.Lore.Image))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if p.Level+1 < p.Campaign.Count() {
		b.WriteString("Press Enter for the next level")
	} else {
		b.WriteString("Press Enter to finish the campaign")
	}

	panel := museumPanelStyle.Render(b.String())
	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, panel)
}
