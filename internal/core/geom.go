// Package core provides the terminal-facing primitives shared by every
// frame driver: cell geometry, the screen buffer, input actions and the
// runtime configuration. It has no external dependencies so game logic
// that draws into a Screen stays testable without a terminal.
package core

import "math"

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Viewport maps a world-space playfield onto a grid of screen cells.
// World units are scaled independently on each axis so the whole
// playfield always fits the screen.
type Viewport struct {
	WorldW, WorldH float64
	Cells          Rect
}

// ToCell converts a world-space point to a cell coordinate.
func (v Viewport) ToCell(x, y float64) (int, int) {
	if v.WorldW <= 0 || v.WorldH <= 0 {
		return v.Cells.X, v.Cells.Y
	}
	cx := v.Cells.X + int(math.Floor(x*float64(v.Cells.W)/v.WorldW))
	cy := v.Cells.Y + int(math.Floor(y*float64(v.Cells.H)/v.WorldH))
	return cx, cy
}

// ToRect converts a world-space rectangle to cells. The result is never
// smaller than one cell so thin objects stay visible.
func (v Viewport) ToRect(x, y, w, h float64) Rect {
	x0, y0 := v.ToCell(x, y)
	x1, y1 := v.ToCell(x+w, y+h)
	return NewRect(x0, y0, Max(1, x1-x0), Max(1, y1-y0))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
