package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrAllLevelsWon is returned by a LevelSource for the index one past
	// the last level. It signals overall victory, not a failure.
	ErrAllLevelsWon = errors.New("sim: all levels won")

	// ErrLevelIndex is returned for negative level indices.
	ErrLevelIndex = errors.New("sim: level index out of range")

	// ErrPhase is returned when a transition is not allowed in the
	// current phase.
	ErrPhase = errors.New("sim: transition not allowed in current phase")
)

// LevelSource supplies immutable level descriptors by index.
type LevelSource interface {
	// Count returns the number of levels.
	Count() int

	// Descriptor returns the layout for a level. It returns
	// ErrAllLevelsWon when index >= Count().
	Descriptor(index int) (Descriptor, error)
}

// Phase is the state of the game loop.
type Phase int

const (
	PhaseIdle          Phase = iota // No attempt loaded yet
	PhaseRunning                    // Stepping every frame
	PhaseLevelComplete              // All fragments collected, loop halted
	PhaseGameOver                   // Fell out, loop halted
	PhaseWon                        // Every level of the source completed
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseLevelComplete:
		return "level-complete"
	case PhaseGameOver:
		return "game-over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// EventKind identifies an event reported to the surrounding application.
type EventKind int

const (
	EventLevelComplete EventKind = iota
	EventGameOver
	EventAllLevelsWon
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLevelComplete:
		return "level-complete"
	case EventGameOver:
		return "game-over"
	case EventAllLevelsWon:
		return "all-levels-won"
	default:
		return "unknown"
	}
}

// Event is emitted on terminal transitions.
type Event struct {
	Kind  EventKind
	Level int // Level index the event refers to
}

// EventHandler receives session events synchronously, from inside the
// call that caused them.
type EventHandler func(Event)

// Session owns the attempt state and the loop phase for one player.
type Session struct {
	source  LevelSource
	params  Params
	phase   Phase
	level   int
	attempt *Attempt
	onEvent EventHandler
}

// NewSession creates an idle session.
func NewSession(source LevelSource, params Params) *Session {
	return &Session{source: source, params: params}
}

// OnEvent registers the handler for session events. A nil handler
// discards events.
func (s *Session) OnEvent(h EventHandler) {
	s.onEvent = h
}

// SetSource swaps the level source. The running attempt keeps its own
// copy of the old layout; the new source is used from the next load.
func (s *Session) SetSource(source LevelSource) {
	s.source = source
}

// Source returns the current level source.
func (s *Session) Source() LevelSource {
	return s.source
}

// Phase returns the current loop phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Level returns the index of the current (or last) level.
func (s *Session) Level() int {
	return s.level
}

// Attempt returns the current attempt, or nil before the first load and
// after all levels are won.
func (s *Session) Attempt() *Attempt {
	return s.attempt
}

// Params returns the physical constants used for new attempts.
func (s *Session) Params() Params {
	return s.params
}

// Start begins the first level. Allowed from any phase.
func (s *Session) Start() error {
	return s.Load(0)
}

// Restart is Start under the name used after winning.
func (s *Session) Restart() error {
	return s.Load(0)
}

// Retry reloads the current level from its descriptor.
func (s *Session) Retry() error {
	if s.phase == PhaseIdle || s.phase == PhaseWon {
		return fmt.Errorf("retry from %s: %w", s.phase, ErrPhase)
	}
	return s.Load(s.level)
}

// Advance loads the level after a completed one.
func (s *Session) Advance() error {
	if s.phase != PhaseLevelComplete {
		return fmt.Errorf("advance from %s: %w", s.phase, ErrPhase)
	}
	return s.Load(s.level + 1)
}

// Load resets attempt state from the level at index. Asking for the index
// past the last level moves the session to PhaseWon and emits
// EventAllLevelsWon. A malformed descriptor is returned as an error and
// leaves the session unchanged.
func (s *Session) Load(index int) error {
	if index < 0 {
		return fmt.Errorf("load level %d: %w", index, ErrLevelIndex)
	}

	d, err := s.source.Descriptor(index)
	if errors.Is(err, ErrAllLevelsWon) {
		s.level = index
		s.attempt = nil
		s.phase = PhaseWon
		s.emit(Event{Kind: EventAllLevelsWon, Level: index})
		return nil
	}
	if err != nil {
		return fmt.Errorf("load level %d: %w", index, err)
	}

	attempt, err := NewAttempt(index, d, s.params)
	if err != nil {
		return fmt.Errorf("load level %d: %w", index, err)
	}

	s.level = index
	s.attempt = attempt
	s.phase = PhaseRunning
	return nil
}

// Step advances the running attempt by one frame. It returns OutcomeNone
// and changes nothing unless the session is running.
func (s *Session) Step(in Input) Outcome {
	if s.phase != PhaseRunning || s.attempt == nil {
		return OutcomeNone
	}

	outcome := s.attempt.Step(in)
	switch outcome {
	case OutcomeLevelComplete:
		s.phase = PhaseLevelComplete
		s.emit(Event{Kind: EventLevelComplete, Level: s.level})
	case OutcomeFallOut:
		s.phase = PhaseGameOver
		s.emit(Event{Kind: EventGameOver, Level: s.level})
	}
	return outcome
}

func (s *Session) emit(e Event) {
	if s.onEvent != nil {
		s.onEvent(e)
	}
}
