package sim

import (
	"errors"
	"testing"
)

// twoLevels is a pair of quick levels: walking right completes each.
func twoLevels() levelList {
	return levelList{
		{
			Platforms: []Platform{NewPlatform(0, 550, 800, 50)},
			Fragments: []Vec{{X: 60, Y: 520}},
		},
		{
			Platforms: []Platform{NewPlatform(100, 400, 600, 50), NewPlatform(0, 550, 800, 50)},
			Fragments: []Vec{{X: 180, Y: 370}, {X: 260, Y: 370}},
		},
	}
}

func runUntilTerminal(t *testing.T, s *Session, in Input) Outcome {
	t.Helper()
	for i := 0; i < 1000; i++ {
		out := s.Step(in)
		if out.Terminal() {
			return out
		}
	}
	t.Fatal("attempt did not end")
	return OutcomeNone
}

func TestSessionIdleStepIsNoop(t *testing.T) {
	s := NewSession(twoLevels(), DefaultParams())

	if s.Phase() != PhaseIdle {
		t.Fatalf("new session phase = %v, expected idle", s.Phase())
	}
	if out := s.Step(Input{Right: true}); out != OutcomeNone {
		t.Errorf("Step() in idle = %v, expected none", out)
	}
	if s.Attempt() != nil {
		t.Error("idle session should have no attempt")
	}
}

func TestSessionProgression(t *testing.T) {
	var events []Event
	s := NewSession(twoLevels(), DefaultParams())
	s.OnEvent(func(e Event) { events = append(events, e) })

	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	for level := 0; level < 2; level++ {
		if s.Phase() != PhaseRunning || s.Level() != level {
			t.Fatalf("expected running level %d, got %v level %d", level, s.Phase(), s.Level())
		}
		if out := runUntilTerminal(t, s, Input{Right: true}); out != OutcomeLevelComplete {
			t.Fatalf("level %d ended with %v", level, out)
		}
		if s.Phase() != PhaseLevelComplete {
			t.Fatalf("phase = %v, expected level-complete", s.Phase())
		}

		// Halted: further steps do nothing.
		tick := s.Attempt().Tick
		if out := s.Step(Input{Right: true}); out != OutcomeNone || s.Attempt().Tick != tick {
			t.Error("step after level-complete must not advance the attempt")
		}

		if err := s.Advance(); err != nil {
			t.Fatalf("Advance() failed: %v", err)
		}
	}

	if s.Phase() != PhaseWon {
		t.Fatalf("phase = %v, expected won", s.Phase())
	}
	if s.Attempt() != nil {
		t.Error("won session should have no attempt")
	}

	expected := []Event{
		{Kind: EventLevelComplete, Level: 0},
		{Kind: EventLevelComplete, Level: 1},
		{Kind: EventAllLevelsWon, Level: 2},
	}
	if len(events) != len(expected) {
		t.Fatalf("events = %v, expected %v", events, expected)
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("event %d = %v, expected %v", i, events[i], expected[i])
		}
	}
}

func TestSessionLoadPastLastLevelWins(t *testing.T) {
	src := twoLevels()
	var got []Event
	s := NewSession(src, DefaultParams())
	s.OnEvent(func(e Event) { got = append(got, e) })

	if err := s.Load(src.Count()); err != nil {
		t.Fatalf("Load(count) returned error: %v", err)
	}
	if s.Phase() != PhaseWon {
		t.Errorf("phase = %v, expected won", s.Phase())
	}
	if len(got) != 1 || got[0].Kind != EventAllLevelsWon {
		t.Errorf("events = %v, expected a single all-levels-won", got)
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if s.Phase() != PhaseRunning || s.Level() != 0 {
		t.Errorf("restart should run level 0, got %v level %d", s.Phase(), s.Level())
	}
}

func TestSessionNegativeIndex(t *testing.T) {
	s := NewSession(twoLevels(), DefaultParams())
	if err := s.Load(-1); !errors.Is(err, ErrLevelIndex) {
		t.Errorf("Load(-1) = %v, expected ErrLevelIndex", err)
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("failed load should leave the session idle, got %v", s.Phase())
	}
}

func TestSessionGameOverAndRetry(t *testing.T) {
	var events []Event
	s := NewSession(twoLevels(), DefaultParams())
	s.OnEvent(func(e Event) { events = append(events, e) })

	if err := s.Load(1); err != nil {
		t.Fatalf("Load(1) failed: %v", err)
	}
	// Walking left off the upper platform lands on the floor; keep going
	// until the floor ends too.
	if out := runUntilTerminal(t, s, Input{Left: true}); out != OutcomeFallOut {
		t.Fatalf("expected fall-out, got %v", out)
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected game-over", s.Phase())
	}
	if len(events) != 1 || events[0] != (Event{Kind: EventGameOver, Level: 1}) {
		t.Fatalf("events = %v, expected game-over on level 1", events)
	}

	if err := s.Advance(); !errors.Is(err, ErrPhase) {
		t.Errorf("Advance() after game over = %v, expected ErrPhase", err)
	}

	if err := s.Retry(); err != nil {
		t.Fatalf("Retry() failed: %v", err)
	}
	a := s.Attempt()
	if s.Phase() != PhaseRunning || a.Level != 1 {
		t.Errorf("retry should rerun level 1, got %v level %d", s.Phase(), a.Level)
	}
	if a.Collected != 0 || a.Tick != 0 {
		t.Errorf("retry should reset attempt state, collected=%d tick=%d", a.Collected, a.Tick)
	}
	for i, f := range a.Fragments {
		if f.Collected {
			t.Errorf("fragment %d should be uncollected after retry", i)
		}
	}
}

func TestSessionCollectedResetOnLoad(t *testing.T) {
	s := NewSession(twoLevels(), DefaultParams())
	if err := s.Load(1); err != nil {
		t.Fatalf("Load(1) failed: %v", err)
	}

	for i := 0; i < 100 && s.Attempt().Collected == 0; i++ {
		s.Step(Input{Right: true})
	}
	if s.Attempt().Collected == 0 {
		t.Fatal("expected a fragment to be collected")
	}

	if err := s.Load(1); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if s.Attempt().Collected != 0 {
		t.Errorf("collected = %d after reload, expected 0", s.Attempt().Collected)
	}
}

func TestSessionRetryPhaseErrors(t *testing.T) {
	s := NewSession(twoLevels(), DefaultParams())
	if err := s.Retry(); !errors.Is(err, ErrPhase) {
		t.Errorf("Retry() from idle = %v, expected ErrPhase", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrPhase) {
		t.Errorf("Advance() from idle = %v, expected ErrPhase", err)
	}

	if err := s.Load(2); err != nil {
		t.Fatalf("Load(2) failed: %v", err)
	}
	if err := s.Retry(); !errors.Is(err, ErrPhase) {
		t.Errorf("Retry() from won = %v, expected ErrPhase", err)
	}
}

func TestSessionInvalidLevelLeavesStateUnchanged(t *testing.T) {
	src := levelList{
		twoLevels()[0],
		{Platforms: []Platform{NewPlatform(0, 550, 800, 50)}},
	}
	s := NewSession(src, DefaultParams())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	before := s.Attempt()

	err := s.Load(1)
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Code != CodeNoFragments {
		t.Fatalf("Load(1) = %v, expected NO_FRAGMENTS", err)
	}
	if s.Attempt() != before || s.Level() != 0 || s.Phase() != PhaseRunning {
		t.Error("failed load must not change the session")
	}
}

func TestSetSourceAppliesOnNextLoad(t *testing.T) {
	s := NewSession(twoLevels(), DefaultParams())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	replacement := levelList{{
		Platforms: []Platform{NewPlatform(300, 500, 100, 20)},
		Fragments: []Vec{{X: 700, Y: 100}},
	}}
	s.SetSource(replacement)
	if s.Attempt().Platforms[0].X != 0 {
		t.Error("running attempt should keep its layout")
	}

	if err := s.Retry(); err != nil {
		t.Fatalf("Retry() failed: %v", err)
	}
	if s.Attempt().Player.Pos.X != 320 {
		t.Errorf("spawn x = %v, expected 320 from the new source", s.Attempt().Player.Pos.X)
	}
}

func TestDeterminism(t *testing.T) {
	inputs := make([]Input, 0, 300)
	for i := 0; i < 300; i++ {
		in := Input{Right: i%7 != 0, Left: i%11 == 0, Jump: i%23 == 0}
		inputs = append(inputs, in)
	}

	run := func() []uint64 {
		s := NewSession(twoLevels(), DefaultParams())
		if err := s.Load(1); err != nil {
			t.Fatalf("Load(1) failed: %v", err)
		}
		hashes := make([]uint64, 0, len(inputs))
		for _, in := range inputs {
			s.Step(in)
			snap := s.Snapshot()
			hashes = append(hashes, snap.Hash())
		}
		return hashes
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("hash mismatch at step %d: %x != %x", i, a[i], b[i])
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewSession(twoLevels(), DefaultParams())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	snap := s.Snapshot()
	snap.Platforms[0].X = 999
	snap.Fragments[0].Collected = true

	if s.Attempt().Platforms[0].X != 0 || s.Attempt().Fragments[0].Collected {
		t.Error("snapshot must not alias attempt state")
	}
	if snap.Total != 1 || snap.Phase != PhaseRunning {
		t.Errorf("snapshot total=%d phase=%v", snap.Total, snap.Phase)
	}
}
