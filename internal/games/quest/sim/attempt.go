package sim

// Descriptor is an immutable level layout. Fragments are template
// positions; live fragments are always fresh copies.
type Descriptor struct {
	Platforms []Platform
	Fragments []Vec
}

// Outcome is the result of a single step.
type Outcome int

const (
	OutcomeNone          Outcome = iota // No attempt is running
	OutcomeContinue                     // Keep stepping
	OutcomeLevelComplete                // Last fragment collected this step
	OutcomeFallOut                      // Player dropped below the playfield
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeContinue:
		return "continue"
	case OutcomeLevelComplete:
		return "level-complete"
	case OutcomeFallOut:
		return "fall-out"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the attempt.
func (o Outcome) Terminal() bool {
	return o == OutcomeLevelComplete || o == OutcomeFallOut
}

// Attempt is one playthrough of a single level from spawn to completion
// or failure. All mutable simulation state lives here.
type Attempt struct {
	Level     int
	Player    Player
	Platforms []Platform
	Fragments []Fragment
	Collected int
	Tick      int

	params Params
	ended  Outcome
}

// NewAttempt builds fresh attempt state from a descriptor. The descriptor
// is copied, never aliased, so replays always start from the templates.
func NewAttempt(level int, d Descriptor, params Params) (*Attempt, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	platforms := make([]Platform, len(d.Platforms))
	copy(platforms, d.Platforms)

	fragments := make([]Fragment, len(d.Fragments))
	for i, pos := range d.Fragments {
		fragments[i] = Fragment{Pos: pos, Size: params.FragmentSize}
	}

	first := platforms[0]
	return &Attempt{
		Level: level,
		Player: Player{
			Pos: Vec{X: first.X + params.SpawnOffsetX, Y: first.Y - params.PlayerH},
			W:   params.PlayerW,
			H:   params.PlayerH,
		},
		Platforms: platforms,
		Fragments: fragments,
		params:    params,
	}, nil
}

// Params returns the physical constants of the attempt.
func (a *Attempt) Params() Params {
	return a.params
}

// Total returns the number of fragments in the level.
func (a *Attempt) Total() int {
	return len(a.Fragments)
}

// Won reports whether every fragment has been collected.
func (a *Attempt) Won() bool {
	return a.Collected == len(a.Fragments)
}

// Ended returns the terminal outcome, or OutcomeNone while in progress.
func (a *Attempt) Ended() Outcome {
	return a.ended
}

// Step advances the attempt by one frame. Once a terminal outcome has been
// reported the attempt is frozen and Step keeps returning that outcome.
func (a *Attempt) Step(in Input) Outcome {
	if a.ended != OutcomeNone {
		return a.ended
	}
	a.Tick++

	if in.Jump {
		a.Player.jump(a.params)
	}
	a.Player.move(in, a.params)

	if a.Player.fellOut(a.params) {
		a.ended = OutcomeFallOut
		return a.ended
	}

	resolvePlatforms(&a.Player, a.Platforms, a.params.Gravity)

	if picked := collectFragments(a.Player, a.Fragments); picked > 0 {
		a.Collected += picked
		if a.Won() {
			a.ended = OutcomeLevelComplete
			return a.ended
		}
	}
	return OutcomeContinue
}
