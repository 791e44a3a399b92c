package quest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/petroglyphs/internal/core"
	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
)

// Visual characters for rendering
const (
	PlatformChar = '▓'
	FragmentChar = '◆'
	PlayerChar   = '█'
	PlayerHead   = '▀'
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// Viewport returns the mapping from playfield units to the cells of dst
// below the HUD.
func (g *Game) Viewport(dst *core.Screen) core.Viewport {
	p := g.session.Params()
	return core.Viewport{
		WorldW: p.PlayfieldW,
		WorldH: p.PlayfieldH,
		Cells:  core.NewRect(0, hudRows, dst.Width(), core.Max(1, dst.Height()-hudRows)),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	switch g.Screen() {
	case ScreenStart, ScreenWin:
	default:
		g.drawPlayfield(dst, g.session.Snapshot())
		g.drawHUD(dst)
	}

	if title, lines, ok := g.Overlay(core.Max(10, dst.Width()*2/3-4)); ok {
		g.drawMessage(dst, title, lines)
	}
}

// Overlay returns the message box shown over the playfield on the current
// screen, with text wrapped to width cells. ok is false while a level is
// running unpaused.
func (g *Game) Overlay(width int) (title string, lines []string, ok bool) {
	switch g.Screen() {
	case ScreenStart:
		title, lines = g.startMessage()
	case ScreenWin:
		title, lines = "YOU WIN!", []string{
			"Every petroglyph of " + g.campaign.Name + " has been restored.",
			"",
			"Enter/R: play again   Q: quit",
		}
	case ScreenMuseum:
		title, lines = g.museumMessage(width)
	case ScreenGameOver:
		title, lines = "GAME OVER", []string{
			"The guardian fell into the ravine.",
			"",
			"Enter/R: retry   Q: quit",
		}
	case ScreenPlaying:
		if !g.paused {
			return "", nil, false
		}
		title, lines = "PAUSED", []string{"Press P to resume"}
	}
	return title, lines, true
}

func (g *Game) drawPlayfield(dst *core.Screen, snap sim.Snapshot) {
	vp := g.Viewport(dst)

	for _, p := range snap.Platforms {
		dst.DrawRectColored(vp.ToRect(p.X, p.Y, p.W, p.H), PlatformChar, core.ColorRock)
	}

	for _, f := range snap.Fragments {
		if f.Collected {
			continue
		}
		cx, cy := vp.ToCell(f.X+f.Size/2, f.Y+f.Size/2)
		dst.SetColored(cx, cy, FragmentChar, core.ColorSand)
	}

	pl := snap.Player
	r := vp.ToRect(pl.X, pl.Y, pl.W, pl.H)
	dst.DrawRectColored(r, PlayerChar, core.ColorUmber)
	if r.H > 1 {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, r.Y, PlayerHead, core.ColorUmber)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	left := fmt.Sprintf(" %s  [%d/%d] ", st.LevelName, st.Level+1, g.campaign.Count())
	right := fmt.Sprintf(" Fragments: %d/%d ", st.Collected, st.Total)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, core.ColorSand)
}

func (g *Game) startMessage() (string, []string) {
	lines := []string{
		"Collect the stone fragments on every level",
		"to restore the petroglyphs to the museum.",
		"",
		"A/D or arrows: walk   W/Up/Space: jump",
		"P: pause   Q: quit",
		"",
	}
	if g.startLevel > 0 {
		lines = append(lines, fmt.Sprintf("Enter: continue from level %d", g.startLevel+1))
	} else {
		lines = append(lines, "Enter: start")
	}
	return strings.ToUpper(g.campaign.Name), lines
}

func (g *Game) museumMessage(width int) (string, []string) {
	lore, _ := g.Lore()

	lines := []string{"Museum entry unlocked", ""}
	lines = append(lines, WrapText(lore.Description, width)...)
	if lore.Image != "" {
		lines = append(lines, "", "Image: "+lore.Image)
	}
	if g.session.Level()+1 < g.campaign.Count() {
		lines = append(lines, "", "Enter: next level")
	} else {
		lines = append(lines, "", "Enter: finish the campaign")
	}

	title := lore.Title
	if title == "" {
		title = "LEVEL COMPLETE"
	}
	return title, lines
}

// drawMessage draws a boxed, centered message.
func (g *Game) drawMessage(dst *core.Screen, title string, lines []string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	boxW := core.Min(width+4, dst.Width())
	boxH := core.Min(len(lines)+4, dst.Height())
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawText(box.X+2, box.Y+2+i, l)
	}
}

// WrapText word-wraps s to lines of at most width cells.
func WrapText(s string, width int) []string {
	if s == "" {
		return nil
	}
	return strings.Split(ansi.Wordwrap(s, width, ""), "\n")
}
