package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// EventLogger returns a listener that logs session events at debug level.
func EventLogger(logger *log.Logger) snake.Listener {
	return snake.ListenerFunc(func(e snake.Event) {
		logger.Debug(e.Kind.String(),
			"session", e.SessionID,
			"score", e.Score,
			"length", e.Length,
		)
	})
}
