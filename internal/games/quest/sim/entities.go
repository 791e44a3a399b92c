// Package sim implements the per-frame platformer simulation: player
// kinematics, landing resolution against static platforms and fragment
// pickup. It is deterministic, performs no I/O and never schedules itself;
// a frame driver calls Step once per display refresh.
package sim

// Vec is a point in playfield units. Y grows downward.
type Vec struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in playfield units.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Platform is an immutable static rectangle the player can land on.
type Platform struct {
	Rect
}

// NewPlatform creates a platform from its top-left corner and size.
func NewPlatform(x, y, w, h float64) Platform {
	return Platform{Rect: Rect{X: x, Y: y, W: w, H: h}}
}

// Fragment is a collectible square anchored at its top-left corner.
type Fragment struct {
	Pos       Vec
	Size      float64
	Collected bool
}

// Center returns the center point of the fragment.
func (f Fragment) Center() Vec {
	return Vec{X: f.Pos.X + f.Size/2, Y: f.Pos.Y + f.Size/2}
}

// Player is the controllable sprite. It is owned by a single Attempt.
type Player struct {
	Pos      Vec
	Vel      Vec
	W, H     float64
	Grounded bool
}

// Bounds returns the player's current bounding box.
func (p Player) Bounds() Rect {
	return Rect{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

// Params holds the physical constants of a simulation.
type Params struct {
	Gravity      float64 // Added to vy every step (downward positive)
	JumpStrength float64 // vy applied on jump, negative is up
	Speed        float64 // Horizontal speed while left/right is held

	PlayfieldW float64
	PlayfieldH float64 // Bottom edge; crossing it is a fall-out

	PlayerW      float64
	PlayerH      float64
	SpawnOffsetX float64 // Spawn x relative to the first platform
	FragmentSize float64
}

// DefaultParams returns the standard game tuning.
func DefaultParams() Params {
	return Params{
		Gravity:      0.5,
		JumpStrength: -12,
		Speed:        5,
		PlayfieldW:   800,
		PlayfieldH:   600,
		PlayerW:      30,
		PlayerH:      40,
		SpawnOffsetX: 20,
		FragmentSize: 20,
	}
}

// Input is the input sampled for one step. Jump is an edge: it is only set
// on the step following a press.
type Input struct {
	Left  bool
	Right bool
	Jump  bool
}
