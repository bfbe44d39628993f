package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone   Action = iota
	ActionUp            // W, K, Up arrow
	ActionDown          // S, J, Down arrow
	ActionLeft          // A, H, Left arrow
	ActionRight         // D, L, Right arrow
	ActionStart         // Enter, Space, R - start a session (also restarts after it ends)
	ActionPause         // P - pause/unpause game
	ActionScores        // Tab - toggle the scoreboard
	ActionQuit          // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionScores:
		return "Scores"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action steers the snake.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame collects the actions triggered between two simulation ticks.
// Actions keep their arrival order so that two key presses landing in the
// same frame are applied one after the other.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make([]Action, 0, 4),
	}
}

// Set appends an action to this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Directions returns the steering actions in arrival order.
func (f InputFrame) Directions() []Action {
	var dirs []Action
	for _, a := range f.Actions {
		if a.IsDirection() {
			dirs = append(dirs, a)
		}
	}
	return dirs
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
