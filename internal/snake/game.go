package snake

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	hudHeight = 2
	cellWidth = 2 // terminal columns per grid cell
	cellRune  = '█'
)

// Game adapts a Session to frame-driven front ends: it owns pause and the
// screen-size guard, keeps a character copy of the board up to date and
// draws the HUD and overlays around it.
type Game struct {
	cfg       config.SnakeConfig
	session   *Session
	surface   *screenSurface
	listeners []Listener

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
	best     int
}

// New creates a game for cfg. Call Reset before the first Step.
func New(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the game identifier used for score storage.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Subscribe registers l with the current session and every later one.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
	if g.session != nil {
		g.session.Subscribe(l)
	}
}

// Reset discards the current session and prepares a new one in the
// NotStarted state. The Start action begins play.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.session = NewSession(g.cfg, rc.Seed)
	for _, l := range g.listeners {
		g.session.Subscribe(l)
	}
	g.surface = newScreenSurface(g.cfg.Palette.TileSize)
	g.session.Paint(g.surface)
	g.paused = false
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize records the screen size and re-evaluates the size guard.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	minW, minH := g.MinSize()
	g.tooSmall = w < minW || h < minH
}

// MinSize returns the smallest screen that fits the HUD and the board.
func (g *Game) MinSize() (w, h int) {
	return g.cfg.Grid.Cols * cellWidth, g.cfg.Grid.Rows + hudHeight
}

// SetBest sets the best score shown in the HUD.
func (g *Game) SetBest(score int) {
	g.best = score
}

// Session exposes the underlying session.
func (g *Game) Session() *Session { return g.session }

// Step applies one frame of input. Start begins a session when none is
// running; Pause toggles; otherwise queued directions are applied in order
// and a single tick runs.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session

	if in.Has(core.ActionStart) && s.State() != Running {
		s.Start()
		g.paused = false
		s.Flush(g.surface)
		return core.StepResult{State: g.State()}
	}

	if s.State() != Running {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Directions() {
		if d, ok := FromAction(a); ok {
			s.SetDirection(d)
		}
	}
	s.Tick()
	s.Flush(g.surface)

	return core.StepResult{State: g.State(), Ticked: true}
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	st := g.session.State()
	return core.GameState{
		Score:    g.session.Score(),
		Running:  st == Running,
		GameOver: st.Ended(),
		Won:      st == Won,
		Paused:   g.paused,
	}
}

// Interval returns the delay before the next tick.
func (g *Game) Interval() time.Duration {
	return g.session.Interval()
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		minW, minH := g.MinSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Resize to at least %dx%d", minW, minH))
		return
	}

	board := g.surface.screen
	dst.Blit(board, (dst.Width()-board.Width())/2, hudHeight)

	switch st := g.session.State(); {
	case st == NotStarted:
		g.renderOverlay(dst, "Snake", "Press Enter to start")
	case st == Won:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Score: %d  Enter to play again", g.session.Score()))
	case st == Lost:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  Enter to restart", g.session.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	best := max(g.best, g.session.Score())
	hud := fmt.Sprintf(" Snake  Score: %d  Length: %d  Best: %d", g.session.Score(), g.session.Length(), best)
	dst.DrawTextColored(0, 0, hud, core.ColorText)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorMuted)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorAccent)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorAccent)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorText)
}

// screenSurface renders the board into a character buffer, two columns per
// cell so that cells look square in a terminal.
type screenSurface struct {
	tile   int
	screen *core.Screen
}

func newScreenSurface(tile int) *screenSurface {
	if tile <= 0 {
		tile = 1
	}
	return &screenSurface{tile: tile, screen: core.NewScreen(0, 0)}
}

func (s *screenSurface) CreateSurface(widthPx, heightPx int) {
	s.screen.Resize(widthPx/s.tile*cellWidth, heightPx/s.tile)
	s.screen.Clear()
}

func (s *screenSurface) DrawCell(c Coord, color core.Color) {
	for i := range cellWidth {
		s.screen.SetColored(c.Col*cellWidth+i, c.Row, cellRune, color)
	}
}

func (s *screenSurface) ClearCell(c Coord) {
	for i := range cellWidth {
		s.screen.Set(c.Col*cellWidth+i, c.Row, ' ')
	}
}
