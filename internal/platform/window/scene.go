// Package window drives the quest game in a desktop window using Ebiten.
// The playfield is drawn one logical pixel per playfield unit and scaled by
// Ebiten to the window size.
package window

import (
	"fmt"
	"image/color"

	"github.com/vovakirdan/petroglyphs/internal/games/quest"
)

// OpKind identifies a draw operation.
type OpKind int

const (
	OpFill   OpKind = iota // Filled rectangle
	OpStroke               // Rectangle outline
	OpText                 // Debug font text at X, Y
)

// Op is one draw operation in playfield coordinates.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Color      color.RGBA
	Text       string
}

// Palette
var (
	ColorSky      = color.RGBA{R: 0xf4, G: 0xe9, B: 0xd8, A: 0xff}
	ColorRock     = color.RGBA{R: 0x7a, G: 0x5a, B: 0x48, A: 0xff}
	ColorSand     = color.RGBA{R: 0xe3, G: 0xc2, B: 0x8c, A: 0xff}
	ColorUmber    = color.RGBA{R: 0x5b, G: 0x3c, B: 0x29, A: 0xff}
	ColorShade    = color.RGBA{R: 0x20, G: 0x16, B: 0x10, A: 0xc0}
	ColorText     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorHUDPanel = color.RGBA{R: 0x3b, G: 0x2a, B: 0x20, A: 0xd0}
)

// Debug font metrics of ebitenutil.DebugPrint.
const (
	glyphW = 6
	lineH  = 16
)

// overlayCols is the wrap width of overlay text in debug font columns.
const overlayCols = 60

// Scene returns the draw operations for the current frame of g, in the
// order they must be drawn.
func Scene(g *quest.Game) []Op {
	p := g.Session().Params()
	ops := []Op{{Kind: OpFill, W: p.PlayfieldW, H: p.PlayfieldH, Color: ColorSky}}

	screen := g.Screen()
	if screen != quest.ScreenStart && screen != quest.ScreenWin {
		ops = appendPlayfield(ops, g)
		ops = appendHUD(ops, g, p.PlayfieldW)
	}

	if title, lines, ok := g.Overlay(overlayCols); ok {
		ops = appendOverlay(ops, title, lines, p.PlayfieldW, p.PlayfieldH)
	}
	return ops
}

func appendPlayfield(ops []Op, g *quest.Game) []Op {
	snap := g.Snapshot()

	for _, r := range snap.Platforms {
		ops = append(ops, Op{Kind: OpFill, X: r.X, Y: r.Y, W: r.W, H: r.H, Color: ColorRock})
	}

	for _, f := range snap.Fragments {
		if f.Collected {
			continue
		}
		ops = append(ops,
			Op{Kind: OpFill, X: f.X, Y: f.Y, W: f.Size, H: f.Size, Color: ColorSand},
			Op{Kind: OpStroke, X: f.X, Y: f.Y, W: f.Size, H: f.Size, Color: ColorRock},
		)
	}

	pl := snap.Player
	return append(ops, Op{Kind: OpFill, X: pl.X, Y: pl.Y, W: pl.W, H: pl.H, Color: ColorUmber})
}

func appendHUD(ops []Op, g *quest.Game, width float64) []Op {
	st := g.State()
	left := fmt.Sprintf("%s  [%d/%d]", st.LevelName, st.Level+1, g.Campaign().Count())
	right := fmt.Sprintf("Fragments: %d/%d", st.Collected, st.Total)

	return append(ops,
		Op{Kind: OpFill, W: width, H: lineH + 4, Color: ColorHUDPanel},
		Op{Kind: OpText, X: 8, Y: 2, Text: left, Color: ColorText},
		Op{Kind: OpText, X: width - float64(len(right)*glyphW) - 8, Y: 2, Text: right, Color: ColorText},
	)
}

func appendOverlay(ops []Op, title string, lines []string, width, height float64) []Op {
	cols := len(title)
	for _, l := range lines {
		cols = max(cols, len(l))
	}
	boxW := min(float64(cols*glyphW+32), width)
	boxH := min(float64((len(lines)+2)*lineH+24), height)
	x := (width - boxW) / 2
	y := (height - boxH) / 2

	ops = append(ops,
		Op{Kind: OpFill, X: x, Y: y, W: boxW, H: boxH, Color: ColorShade},
		Op{Kind: OpStroke, X: x, Y: y, W: boxW, H: boxH, Color: ColorSand},
		Op{Kind: OpText, X: x + (boxW-float64(len(title)*glyphW))/2, Y: y + 12, Text: title, Color: ColorSand},
	)
	for i, l := range lines {
		ops = append(ops, Op{Kind: OpText, X: x + 16, Y: y + 12 + float64((i+2)*lineH), Text: l, Color: ColorText})
	}
	return ops
}
