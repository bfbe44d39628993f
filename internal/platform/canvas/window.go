package canvas

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	hudHeight = 32
	fontSize  = 20
)

// Options configures a window game.
type Options struct {
	Config    config.SnakeConfig
	Seed      int64
	Player    string
	Store     *storage.Store // optional
	Listeners []snake.Listener
	Logger    *log.Logger // optional
}

// keyNames maps raylib key codes to the symbols understood by
// snake.ParseKey.
var keyNames = map[int32]string{
	rl.KeyW:     "w",
	rl.KeyA:     "a",
	rl.KeyS:     "s",
	rl.KeyD:     "d",
	rl.KeyH:     "h",
	rl.KeyJ:     "j",
	rl.KeyK:     "k",
	rl.KeyL:     "l",
	rl.KeyUp:    "ArrowUp",
	rl.KeyDown:  "ArrowDown",
	rl.KeyLeft:  "ArrowLeft",
	rl.KeyRight: "ArrowRight",
}

// keyName returns the symbol for a raylib key code, or "" if unbound.
func keyName(key int32) string {
	return keyNames[key]
}

// isStartKey reports whether key starts a session.
func isStartKey(key int32) bool {
	return key == rl.KeyEnter || key == rl.KeySpace || key == rl.KeyR
}

// Run opens a window and plays until it is closed.
func Run(opts Options) error {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tile := cfg.Palette.TileSize
	boardW, boardH := cfg.Grid.Cols*tile, cfg.Grid.Rows*tile

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(boardW), int32(boardH+hudHeight), "Snake")
	if !rl.IsWindowReady() {
		return fmt.Errorf("canvas: cannot open window")
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := NewRenderer(tile, cfg.Palette.Board)
	defer renderer.Unload()

	session := snake.NewSession(cfg, opts.Seed)
	for _, l := range opts.Listeners {
		session.Subscribe(l)
	}
	session.Paint(renderer)

	best := 0
	if opts.Store != nil {
		if high, err := opts.Store.HighScore(); err == nil {
			best = high
		}
	}

	var nextTick time.Time
	saved := false

	for !rl.WindowShouldClose() {
		for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
			switch {
			case key == rl.KeyQ:
				return nil
			case isStartKey(key):
				if session.Start() {
					nextTick = time.Now().Add(session.Interval())
					saved = false
				}
			default:
				if name := keyName(key); name != "" {
					session.HandleKey(name)
				}
			}
		}

		// Ticks only run while a session is in progress
		if session.State() == snake.Running && !time.Now().Before(nextTick) {
			session.Tick()
			nextTick = time.Now().Add(session.Interval())
		}

		if session.State().Ended() && !saved {
			saved = true
			best = max(best, session.Score())
			if opts.Store != nil && session.Score() > 0 {
				if _, err := opts.Store.SaveScore(session.ID(), opts.Player, session.Score(), session.Length()); err != nil {
					logger.Error("could not save score", "error", err)
				}
			}
		}

		session.Flush(renderer)
		renderer.Commit()

		rl.BeginDrawing()
		rl.ClearBackground(renderer.background)
		drawHUD(session, max(best, session.Score()))
		renderer.Draw(0, hudHeight)
		drawOverlay(session, boardW, boardH)
		rl.EndDrawing()
	}
	return nil
}

func drawHUD(s *snake.Session, best int) {
	hud := fmt.Sprintf("Score: %d   Length: %d   Best: %d", s.Score(), s.Length(), best)
	rl.DrawText(hud, 8, (hudHeight-fontSize)/2, fontSize, rl.RayWhite)
}

func drawOverlay(s *snake.Session, boardW, boardH int) {
	var text string
	switch s.State() {
	case snake.NotStarted:
		text = "Press Enter to start"
	case snake.Won:
		text = "You win! Enter to play again"
	case snake.Lost:
		text = "Game over. Enter to restart"
	default:
		return
	}
	w := rl.MeasureText(text, fontSize)
	x := (int32(boardW) - w) / 2
	y := hudHeight + (int32(boardH)-fontSize)/2
	rl.DrawRectangle(x-10, y-8, w+20, fontSize+16, rl.Fade(rl.Black, 0.7))
	rl.DrawText(text, x, y, fontSize, rl.RayWhite)
}
