package sim

import "math"

// landsOn reports whether the player lands on the platform this step.
//
// The lower bound for the player's bottom edge is the platform top; the
// upper bound is the top pushed down by vy + gravity, i.e. by the distance
// the player will cover next step. A fast fall therefore snaps onto the
// platform instead of tunneling through it.
func landsOn(p Player, pl Platform, gravity float64) bool {
	bottom := p.Pos.Y + p.H
	return bottom >= pl.Y &&
		bottom <= pl.Y+p.Vel.Y+gravity &&
		p.Pos.X+p.W > pl.X &&
		p.Pos.X < pl.Right()
}

// resolvePlatforms resets grounding and snaps the player onto every
// matching platform in descriptor order. When several platforms match,
// the last one wins; there is no highest-platform priority.
func resolvePlatforms(p *Player, platforms []Platform, gravity float64) int {
	p.Grounded = false
	matched := 0
	for _, pl := range platforms {
		if !landsOn(*p, pl, gravity) {
			continue
		}
		p.Vel.Y = 0
		p.Grounded = true
		p.Pos.Y = pl.Y - p.H
		matched++
	}
	return matched
}

// touches reports whether the player's center is strictly inside the
// pickup radius of the fragment.
func touches(p Player, f Fragment) bool {
	pc := p.Bounds().Center()
	fc := f.Center()
	dx := pc.X - fc.X
	dy := pc.Y - fc.Y
	distance := math.Sqrt(dx*dx + dy*dy)
	return distance < p.W/2+f.Size/2
}

// collectFragments marks every touched, uncollected fragment as collected
// and returns how many were picked up this step.
func collectFragments(p Player, fragments []Fragment) int {
	picked := 0
	for i := range fragments {
		if fragments[i].Collected || !touches(p, fragments[i]) {
			continue
		}
		fragments[i].Collected = true
		picked++
	}
	return picked
}
