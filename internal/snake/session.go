package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/vovakirdan/tui-snake/internal/config"
)

// Session owns one board and the snake on it. It is not safe for concurrent
// use; one goroutine drives Start, SetDirection and Tick.
type Session struct {
	cfg config.SnakeConfig
	rng *rand.Rand
	now func() time.Time

	id    uuid.UUID
	state State
	grid  *Grid

	// Head at index 0.
	segments []Coord
	apple    Coord
	hasApple bool

	// applied is the heading used by the last completed tick; pending is
	// latched at the start of the next one.
	applied Direction
	pending Direction

	score int
	ticks uint64

	listeners []Listener
	dirty     dirtySet
}

// NewSession creates a session in the NotStarted state. The grid is
// allocated with its walls so that it can be painted before the first Start.
// cfg is expected to be validated.
func NewSession(cfg config.SnakeConfig, seed int64) *Session {
	s := &Session{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		now:     time.Now,
		state:   NotStarted,
		grid:    NewGrid(cfg.Grid.Rows, cfg.Grid.Cols),
		applied: Left,
		pending: Left,
	}
	s.dirty.reset(s.grid)
	return s
}

// Subscribe registers l for all future events.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Start begins a new game. From NotStarted, Won or Lost it resets the board,
// places a length-1 snake in the centre heading left, clears the score and
// spawns an apple. Start while Running does nothing and returns false.
func (s *Session) Start() bool {
	if s.state == Running {
		return false
	}

	rows, cols := s.cfg.Grid.Rows, s.cfg.Grid.Cols
	s.grid = NewGrid(rows, cols)
	s.dirty.reset(s.grid)

	head := Coord{Row: rows / 2, Col: cols / 2}
	s.segments = append(s.segments[:0], head)
	s.grid.Set(head, Head)

	s.applied = Left
	s.pending = Left
	s.score = 0
	s.ticks = 0
	s.hasApple = false
	s.id = uuid.New()
	s.state = Running

	s.placeApple()
	s.emit(GameStarted)
	return true
}

// SetDirection queues d for the next tick. A heading that reverses the one
// applied in the last completed tick is rejected, so two inputs between
// ticks cannot chain into a reversal.
func (s *Session) SetDirection(d Direction) bool {
	if d == s.applied.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// HandleKey maps a raw key symbol to a direction and queues it.
// Unknown keys are ignored.
func (s *Session) HandleKey(key string) bool {
	d, ok := ParseKey(key)
	if !ok {
		return false
	}
	return s.SetDirection(d)
}

// Tick advances the snake by one cell. The candidate head is classified
// before anything is mutated: hitting a wall or the body ends the game with
// the snake left where it was. Tick panics unless the session is Running.
func (s *Session) Tick() Outcome {
	if s.state != Running {
		panic(fmt.Sprintf("snake: tick while %s", s.state))
	}
	s.ticks++
	s.applied = s.pending

	head := s.segments[0]
	next := head.Add(s.applied.Delta())

	if s.collides(next) {
		s.state = Lost
		s.emit(GameLost)
		return Collided
	}

	switch s.grid.Get(next) {
	case Apple:
		s.advance(head, next, true)
		s.hasApple = false
		s.score += s.cfg.Scoring.PointsPerApple

		if s.boardFilled() {
			s.state = Won
		} else {
			s.placeApple()
		}

		s.emit(AppleEaten)
		if s.state == Won {
			s.emit(GameWon)
		}
		return Ate

	default:
		s.advance(head, next, false)
		return Moved
	}
}

// collides reports whether moving the head into next ends the game. The
// tail has not moved yet, so its cell still counts as body.
func (s *Session) collides(next Coord) bool {
	return !IsPassable(s.grid.Get(next))
}

// boardFilled reports whether the snake covers the whole interior.
func (s *Session) boardFilled() bool {
	return s.grid.Full()
}

// advance moves the head into next and, unless growing, vacates the tail.
func (s *Session) advance(head, next Coord, grow bool) {
	s.segments = append(s.segments, Coord{})
	copy(s.segments[1:], s.segments)
	s.segments[0] = next

	s.set(head, Body)
	s.set(next, Head)

	if !grow {
		tail := s.segments[len(s.segments)-1]
		s.segments = s.segments[:len(s.segments)-1]
		s.set(tail, Air)
	}
}

// set writes a cell and records it for the next Flush.
func (s *Session) set(c Coord, cell Cell) {
	s.grid.Set(c, cell)
	s.dirty.mark(c)
}

func (s *Session) emit(kind EventKind) {
	if len(s.listeners) == 0 {
		return
	}
	e := Event{
		Kind:      kind,
		SessionID: s.id,
		Score:     s.score,
		Length:    len(s.segments),
		At:        s.now(),
	}
	for _, l := range s.listeners {
		l.OnEvent(e)
	}
}

// ID returns the identifier minted by the last Start, or uuid.Nil before
// the first one.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the lifecycle phase.
func (s *Session) State() State { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Length returns the number of snake segments.
func (s *Session) Length() int { return len(s.segments) }

// Ticks returns the number of ticks since Start.
func (s *Session) Ticks() uint64 { return s.ticks }

// Head returns the head position. It is only meaningful after Start.
func (s *Session) Head() Coord {
	if len(s.segments) == 0 {
		return Coord{}
	}
	return s.segments[0]
}

// Segments returns a copy of the snake, head first.
func (s *Session) Segments() []Coord {
	out := make([]Coord, len(s.segments))
	copy(out, s.segments)
	return out
}

// Apple returns the apple position and whether one is on the board.
func (s *Session) Apple() (Coord, bool) { return s.apple, s.hasApple }

// Direction returns the heading applied by the last tick.
func (s *Session) Direction() Direction { return s.applied }

// Pending returns the heading the next tick will use.
func (s *Session) Pending() Direction { return s.pending }

// Cell returns the state of the grid at c.
func (s *Session) Cell(c Coord) Cell { return s.grid.Get(c) }

// Rows returns the grid height, border included.
func (s *Session) Rows() int { return s.grid.Rows() }

// Cols returns the grid width, border included.
func (s *Session) Cols() int { return s.grid.Cols() }

// Config returns the configuration the session was created with.
func (s *Session) Config() config.SnakeConfig { return s.cfg }

// Interval returns the delay before the next tick at the current score.
func (s *Session) Interval() time.Duration {
	return s.cfg.Speed.Interval(s.score)
}
