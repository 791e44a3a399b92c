package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionJump           // W, Up arrow, Space - jump (edge triggered)
	ActionConfirm        // Enter - start, next level
	ActionRestart        // R key - retry after game over, restart after win
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state sampled for a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// holdForever marks an action held until an explicit Release.
const holdForever = -1

// InputLatch is the latched key-state map written by input events and read
// once per tick. Drivers that see key releases use Hold/Release; terminal
// drivers only see presses (and auto-repeat), so Press keeps the action
// held for a fixed number of ticks after the last press.
//
// Every Press also records an edge, so an action pressed and released
// between two ticks is still observed by exactly one Sample.
type InputLatch struct {
	holdTicks int
	heldUntil map[Action]int
	edges     map[Action]bool
}

// NewInputLatch creates a latch that keeps pressed actions alive for
// holdTicks ticks.
func NewInputLatch(holdTicks int) *InputLatch {
	if holdTicks < 0 {
		holdTicks = 0
	}
	return &InputLatch{
		holdTicks: holdTicks,
		heldUntil: make(map[Action]int),
		edges:     make(map[Action]bool),
	}
}

// Press records a key press observed at the given tick.
func (l *InputLatch) Press(a Action, tick int) {
	l.edges[a] = true
	if until, ok := l.heldUntil[a]; ok && until == holdForever {
		return
	}
	l.heldUntil[a] = tick + l.holdTicks
}

// Tap records an edge without holding the action. Used for one-shot
// actions such as jump or confirm.
func (l *InputLatch) Tap(a Action) {
	l.edges[a] = true
}

// Hold marks an action held until Release is called.
func (l *InputLatch) Hold(a Action) {
	if until, ok := l.heldUntil[a]; !ok || until != holdForever {
		l.edges[a] = true
	}
	l.heldUntil[a] = holdForever
}

// Release ends a hold. A pending edge is kept so the press is not lost.
func (l *InputLatch) Release(a Action) {
	delete(l.heldUntil, a)
}

// Reset drops every hold and pending edge.
func (l *InputLatch) Reset() {
	clear(l.heldUntil)
	clear(l.edges)
}

// Sample returns the input for the given tick and consumes pending edges.
func (l *InputLatch) Sample(tick int) InputFrame {
	frame := NewInputFrame()
	for a := range l.edges {
		frame.Set(a)
	}
	clear(l.edges)

	for a, until := range l.heldUntil {
		if until == holdForever || tick < until {
			frame.Set(a)
			continue
		}
		delete(l.heldUntil, a)
	}
	return frame
}
