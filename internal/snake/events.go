package snake

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies what happened in a session.
type EventKind int

const (
	GameStarted EventKind = iota
	AppleEaten
	GameLost
	GameWon
)

func (k EventKind) String() string {
	switch k {
	case GameStarted:
		return "game_started"
	case AppleEaten:
		return "apple_eaten"
	case GameLost:
		return "game_lost"
	case GameWon:
		return "game_won"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners once the session state is consistent.
type Event struct {
	Kind      EventKind
	SessionID uuid.UUID
	Score     int
	Length    int
	At        time.Time
}

// Listener receives session events. Calls happen synchronously on the
// goroutine that drives the session, so implementations must not block.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) { f(e) }
