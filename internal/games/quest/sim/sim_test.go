package sim

import (
	"errors"
	"testing"
)

// levelList is an in-memory LevelSource.
type levelList []Descriptor

func (l levelList) Count() int { return len(l) }

func (l levelList) Descriptor(index int) (Descriptor, error) {
	if index >= len(l) {
		return Descriptor{}, ErrAllLevelsWon
	}
	return l[index], nil
}

// floor is a single wide platform with fragments far out of reach.
func floor() Descriptor {
	return Descriptor{
		Platforms: []Platform{NewPlatform(0, 550, 800, 50)},
		Fragments: []Vec{{X: 700, Y: 100}},
	}
}

func newAttempt(t *testing.T, d Descriptor) *Attempt {
	t.Helper()
	a, err := NewAttempt(0, d, DefaultParams())
	if err != nil {
		t.Fatalf("NewAttempt() failed: %v", err)
	}
	return a
}

func TestSpawnOnFirstPlatform(t *testing.T) {
	d := floor()
	d.Platforms = append([]Platform{NewPlatform(250, 480, 150, 50)}, d.Platforms...)
	a := newAttempt(t, d)

	if a.Player.Pos.X != 270 || a.Player.Pos.Y != 440 {
		t.Errorf("spawn = (%v, %v), expected (270, 440)", a.Player.Pos.X, a.Player.Pos.Y)
	}
	if a.Player.Grounded {
		t.Error("player should not be grounded before the first step")
	}
}

func TestRestOnPlatform(t *testing.T) {
	a := newAttempt(t, floor())
	x := a.Player.Pos.X

	if out := a.Step(Input{}); out != OutcomeContinue {
		t.Fatalf("Step() = %v, expected continue", out)
	}

	if a.Player.Vel.Y != 0 {
		t.Errorf("vy = %v, expected 0", a.Player.Vel.Y)
	}
	if !a.Player.Grounded {
		t.Error("player resting on a platform should be grounded")
	}
	if a.Player.Pos.X != x {
		t.Errorf("x = %v, expected unchanged %v", a.Player.Pos.X, x)
	}
	if a.Player.Pos.Y != 510 {
		t.Errorf("y = %v, expected snap to 510", a.Player.Pos.Y)
	}
}

func TestHorizontalInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		vx   float64
	}{
		{"none", Input{}, 0},
		{"left", Input{Left: true}, -5},
		{"right", Input{Right: true}, 5},
		{"both held, left wins", Input{Left: true, Right: true}, -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newAttempt(t, floor())
			x := a.Player.Pos.X
			a.Step(tc.in)
			if a.Player.Vel.X != tc.vx {
				t.Errorf("vx = %v, expected %v", a.Player.Vel.X, tc.vx)
			}
			if a.Player.Pos.X != x+tc.vx {
				t.Errorf("x = %v, expected %v", a.Player.Pos.X, x+tc.vx)
			}
		})
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	a := newAttempt(t, floor())

	// Airborne on spawn: the jump edge is ignored.
	a.Step(Input{Jump: true})
	if a.Player.Vel.Y != 0 || !a.Player.Grounded {
		t.Fatalf("jump before grounding should be ignored, vy=%v grounded=%v", a.Player.Vel.Y, a.Player.Grounded)
	}

	a.Step(Input{Jump: true})
	if a.Player.Vel.Y != -11.5 {
		t.Errorf("vy after jump = %v, expected -11.5", a.Player.Vel.Y)
	}
	if a.Player.Grounded {
		t.Error("player should leave the ground after jumping")
	}
	if a.Player.Pos.Y != 498.5 {
		t.Errorf("y after jump = %v, expected 498.5", a.Player.Pos.Y)
	}

	vy := a.Player.Vel.Y
	a.Step(Input{Jump: true})
	if a.Player.Vel.Y != vy+0.5 {
		t.Errorf("mid-air jump should only add gravity, vy=%v", a.Player.Vel.Y)
	}
}

func TestJumpArcLandsBack(t *testing.T) {
	a := newAttempt(t, floor())
	a.Step(Input{})
	a.Step(Input{Jump: true})

	for i := 0; i < 200 && !a.Player.Grounded; i++ {
		if out := a.Step(Input{}); out != OutcomeContinue {
			t.Fatalf("step %d: unexpected outcome %v", i, out)
		}
	}
	if !a.Player.Grounded || a.Player.Pos.Y != 510 {
		t.Errorf("player should land back on the floor, y=%v grounded=%v", a.Player.Pos.Y, a.Player.Grounded)
	}
}

func TestResolvePlatformsGroundedIffMatch(t *testing.T) {
	g := DefaultParams().Gravity
	platforms := []Platform{NewPlatform(100, 300, 100, 20)}

	tests := []struct {
		name    string
		player  Player
		matched int
	}{
		{"bottom on top edge", Player{Pos: Vec{120, 260}, Vel: Vec{0, 3}, W: 30, H: 40}, 1},
		{"bottom inside predicted band", Player{Pos: Vec{120, 263}, Vel: Vec{0, 3}, W: 30, H: 40}, 1},
		{"bottom past predicted band", Player{Pos: Vec{120, 264}, Vel: Vec{0, 3}, W: 30, H: 40}, 0},
		{"above platform", Player{Pos: Vec{120, 250}, Vel: Vec{0, 3}, W: 30, H: 40}, 0},
		{"moving up through top", Player{Pos: Vec{120, 262}, Vel: Vec{0, -5}, W: 30, H: 40}, 0},
		{"left edge touching only", Player{Pos: Vec{70, 260}, Vel: Vec{0, 1}, W: 30, H: 40}, 0},
		{"right edge touching only", Player{Pos: Vec{200, 260}, Vel: Vec{0, 1}, W: 30, H: 40}, 0},
		{"one unit overlap left", Player{Pos: Vec{71, 260}, Vel: Vec{0, 1}, W: 30, H: 40}, 1},
		{"one unit overlap right", Player{Pos: Vec{199, 260}, Vel: Vec{0, 1}, W: 30, H: 40}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.player
			p.Grounded = true // must be reset by the resolver
			matched := resolvePlatforms(&p, platforms, g)
			if matched != tc.matched {
				t.Fatalf("matched = %d, expected %d", matched, tc.matched)
			}
			if p.Grounded != (matched > 0) {
				t.Errorf("grounded = %v with %d matches", p.Grounded, matched)
			}
			if matched > 0 && (p.Pos.Y != 260 || p.Vel.Y != 0) {
				t.Errorf("match should snap to y=260, vy=0, got y=%v vy=%v", p.Pos.Y, p.Vel.Y)
			}
		})
	}
}

func TestResolvePlatformsLastMatchWins(t *testing.T) {
	g := DefaultParams().Gravity
	lower := NewPlatform(0, 550.25, 200, 50)
	upper := NewPlatform(0, 550, 200, 50)

	p := Player{Pos: Vec{20, 510.5}, Vel: Vec{0, 1.5}, W: 30, H: 40}
	matched := resolvePlatforms(&p, []Platform{lower, upper}, g)

	if matched != 2 {
		t.Fatalf("matched = %d, expected both platforms", matched)
	}
	if p.Pos.Y != 510 {
		t.Errorf("y = %v, expected the last matching platform (top 550) to win", p.Pos.Y)
	}
}

func TestFallOutRegardlessOfX(t *testing.T) {
	for _, x := range []float64{-5000, 20, 400, 5000} {
		a := newAttempt(t, floor())
		a.Player.Pos = Vec{X: x, Y: 560}

		if out := a.Step(Input{}); out != OutcomeFallOut {
			t.Errorf("x=%v: Step() = %v, expected fall-out", x, out)
		}
	}
}

func TestFallOutBoundaryIsStrict(t *testing.T) {
	a := newAttempt(t, floor())
	a.Player.Pos = Vec{X: -500, Y: 559.5}

	if out := a.Step(Input{}); out != OutcomeContinue {
		t.Fatalf("bottom exactly on the playfield edge should continue, got %v", out)
	}
	if out := a.Step(Input{}); out != OutcomeFallOut {
		t.Errorf("next step should fall out, got %v", out)
	}
}

func TestFallOutSkipsCollision(t *testing.T) {
	d := Descriptor{
		Platforms: []Platform{NewPlatform(0, 550, 800, 50)},
		Fragments: []Vec{{X: -490, Y: 570}},
	}
	a := newAttempt(t, d)
	a.Player.Pos = Vec{X: -500, Y: 561}

	if out := a.Step(Input{}); out != OutcomeFallOut {
		t.Fatalf("Step() = %v, expected fall-out", out)
	}
	if a.Collected != 0 || a.Fragments[0].Collected {
		t.Error("no pickup may be processed on a fall-out step")
	}
}

func TestLevelCompleteOnLastFragment(t *testing.T) {
	d := Descriptor{
		Platforms: []Platform{NewPlatform(0, 550, 800, 50)},
		Fragments: []Vec{{X: 100, Y: 520}, {X: 300, Y: 520}, {X: 500, Y: 520}},
	}
	a := newAttempt(t, d)

	prev := 0
	var out Outcome
	for i := 0; i < 500; i++ {
		out = a.Step(Input{Right: true})
		if a.Collected < prev {
			t.Fatalf("collected count decreased from %d to %d", prev, a.Collected)
		}
		prev = a.Collected

		if out == OutcomeLevelComplete {
			break
		}
		if out != OutcomeContinue {
			t.Fatalf("step %d: unexpected outcome %v", i, out)
		}
		if a.Collected == a.Total() {
			t.Fatal("all fragments collected without reporting level-complete")
		}
	}

	if out != OutcomeLevelComplete {
		t.Fatalf("level never completed, collected %d/%d", a.Collected, a.Total())
	}
	if a.Collected != 3 {
		t.Errorf("collected = %d, expected 3", a.Collected)
	}
	for i, f := range a.Fragments {
		if !f.Collected {
			t.Errorf("fragment %d should be collected", i)
		}
	}
}

func TestPickupRadiusBoundaryIsStrict(t *testing.T) {
	// Player center (35, 530), fragment center (60, 530): distance 25 equals
	// the pickup radius 15 + 10.
	d := Descriptor{
		Platforms: []Platform{NewPlatform(0, 550, 800, 50)},
		Fragments: []Vec{{X: 50, Y: 520}},
	}

	for run := 0; run < 3; run++ {
		a := newAttempt(t, d)
		for i := 0; i < 10; i++ {
			a.Step(Input{})
		}
		if a.Fragments[0].Collected || a.Collected != 0 {
			t.Fatalf("run %d: fragment exactly on the radius must not be collected", run)
		}
	}

	inside := Fragment{Pos: Vec{X: 49.9, Y: 520}, Size: 20}
	p := Player{Pos: Vec{20, 510}, W: 30, H: 40}
	if !touches(p, inside) {
		t.Error("fragment just inside the radius should be collected")
	}
}

func TestTerminalAttemptIsFrozen(t *testing.T) {
	a := newAttempt(t, floor())
	a.Player.Pos = Vec{X: 0, Y: 590}
	a.Step(Input{})

	pos := a.Player.Pos
	tick := a.Tick
	if out := a.Step(Input{Right: true}); out != OutcomeFallOut {
		t.Errorf("frozen attempt should keep reporting fall-out, got %v", out)
	}
	if a.Player.Pos != pos || a.Tick != tick {
		t.Error("frozen attempt must not change")
	}
}

func TestAttemptDoesNotAliasDescriptor(t *testing.T) {
	d := floor()
	a := newAttempt(t, d)

	a.Platforms[0].X = 999
	a.Fragments[0].Pos.X = 999
	if d.Platforms[0].X != 0 || d.Fragments[0].X != 700 {
		t.Error("mutating the attempt must not change the descriptor")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		code string
	}{
		{"no platforms", Descriptor{Fragments: []Vec{{X: 1, Y: 1}}}, CodeNoPlatforms},
		{"no fragments", Descriptor{Platforms: []Platform{NewPlatform(0, 0, 10, 10)}}, CodeNoFragments},
		{"zero width", Descriptor{
			Platforms: []Platform{NewPlatform(0, 0, 10, 10), NewPlatform(0, 0, 0, 10)},
			Fragments: []Vec{{X: 1, Y: 1}},
		}, CodeBadPlatform},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAttempt(0, tc.d, DefaultParams())
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Code != tc.code {
				t.Errorf("code = %s, expected %s", verr.Code, tc.code)
			}
		})
	}

	params := DefaultParams()
	params.Gravity = 0
	if _, err := NewAttempt(0, floor(), params); err == nil {
		t.Error("zero gravity should be rejected")
	}
}
