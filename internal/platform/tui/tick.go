// Package tui provides the Bubble Tea front end for the snake game.
// It handles the terminal UI loop, input mapping, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// gen ties the tick to the tick loop that scheduled it, so a loop left
// over from a finished session is dropped when a new one starts.
type TickMsg struct {
	At  time.Time
	gen int
}

// tickCmd schedules a single tick after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, gen: gen}
	})
}
