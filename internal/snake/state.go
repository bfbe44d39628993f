package snake

// State is the lifecycle phase of a session.
type State int

const (
	NotStarted State = iota
	Running
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Ended reports whether the session reached a terminal state.
func (s State) Ended() bool {
	return s == Won || s == Lost
}

// Outcome is the result of a single tick.
type Outcome int

const (
	Moved Outcome = iota
	Ate
	Collided
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Collided:
		return "collided"
	default:
		return "unknown"
	}
}
