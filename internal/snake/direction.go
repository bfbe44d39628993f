package snake

import (
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Direction is the heading of the snake.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the unit vector of d.
func (d Direction) Delta() Coord {
	switch d {
	case Up:
		return Coord{Row: -1}
	case Down:
		return Coord{Row: 1}
	case Left:
		return Coord{Col: -1}
	default:
		return Coord{Col: 1}
	}
}

// keyDirections maps key names from terminals and browsers alike.
var keyDirections = map[string]Direction{
	"w": Up, "up": Up, "arrowup": Up, "k": Up,
	"s": Down, "down": Down, "arrowdown": Down, "j": Down,
	"a": Left, "left": Left, "arrowleft": Left, "h": Left,
	"d": Right, "right": Right, "arrowright": Right, "l": Right,
}

// ParseKey maps a raw key symbol such as "w", "up" or "ArrowUp" to a
// direction. Matching ignores case.
func ParseKey(key string) (Direction, bool) {
	d, ok := keyDirections[strings.ToLower(key)]
	return d, ok
}

// FromAction converts a steering action to a direction.
func FromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	default:
		return 0, false
	}
}
