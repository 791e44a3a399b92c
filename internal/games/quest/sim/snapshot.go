package sim

import "math"

// PlayerView is the draw-eligible state of the player.
type PlayerView struct {
	X, Y, W, H float64
	VX, VY     float64
	Grounded   bool
}

// FragmentView is the draw-eligible state of a fragment.
type FragmentView struct {
	X, Y, Size float64
	Collected  bool
}

// Snapshot is a copy of everything a renderer needs for one frame.
// Mutating a snapshot never affects the session.
type Snapshot struct {
	Tick      int
	Level     int
	Phase     Phase
	Player    PlayerView
	Platforms []Rect
	Fragments []FragmentView
	Collected int
	Total     int
}

// Snapshot returns the current frame state. Before the first load and
// after winning only Level and Phase are set.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{Level: s.level, Phase: s.phase}
	a := s.attempt
	if a == nil {
		return snap
	}

	snap.Tick = a.Tick
	snap.Collected = a.Collected
	snap.Total = a.Total()
	snap.Player = PlayerView{
		X: a.Player.Pos.X, Y: a.Player.Pos.Y,
		W: a.Player.W, H: a.Player.H,
		VX: a.Player.Vel.X, VY: a.Player.Vel.Y,
		Grounded: a.Player.Grounded,
	}

	snap.Platforms = make([]Rect, len(a.Platforms))
	for i, p := range a.Platforms {
		snap.Platforms[i] = p.Rect
	}

	snap.Fragments = make([]FragmentView, len(a.Fragments))
	for i, f := range a.Fragments {
		snap.Fragments[i] = FragmentView{X: f.Pos.X, Y: f.Pos.Y, Size: f.Size, Collected: f.Collected}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Collected) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Total)     //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Player.X)
	h = h*31 + math.Float64bits(snap.Player.Y)
	h = h*31 + math.Float64bits(snap.Player.VX)
	h = h*31 + math.Float64bits(snap.Player.VY)
	if snap.Player.Grounded {
		h = h*31 + 1
	}

	for _, f := range snap.Fragments {
		h = h*31 + math.Float64bits(f.X)
		h = h*31 + math.Float64bits(f.Y)
		if f.Collected {
			h = h*31 + 1
		}
	}
	return h
}
