package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Model is the Bubble Tea model for one player's game.
// The tick loop runs only while a session is in progress: each tick
// schedules the next one with an interval derived from the current score,
// and nothing is scheduled once the session is won or lost.
type Model struct {
	game       *snake.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	scoreboard ScoreboardModel
	inputFrame core.InputFrame
	gameState  core.GameState
	gen        int  // Tick loop generation
	showScores bool // Whether the scoreboard replaces the board
	quitting   bool
	scoreSaved bool // Whether score has been saved for the finished session
}

// NewModel creates a model for game. store and logger may be nil.
func NewModel(game *snake.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, boardHeight(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		player:     player,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		scoreboard: NewScoreboardModel(store, cfg.ScreenW, cfg.ScreenH),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW

	game.Reset(core.RuntimeConfig{Seed: cfg.Seed, ScreenW: cfg.ScreenW, ScreenH: boardHeight(cfg.ScreenH)})
	m.gameState = game.State()
	m.refreshBest()
	return m
}

// boardHeight is the screen height left after the help line.
func boardHeight(h int) int {
	return max(0, h-1)
}

// Init waits for the player to start a session.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if m.showScores {
		switch {
		case action == core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case action == core.ActionScores, action == core.ActionPause,
			key.Matches(msg, m.scoreboard.keys.Back):
			m.showScores = false
			return m, nil
		}
		var cmd tea.Cmd
		m.scoreboard, cmd = m.scoreboard.Update(msg)
		return m, cmd
	}

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionScores:
		m.scoreboard.Refresh()
		m.showScores = true
		return m, nil

	case core.ActionStart:
		if m.gameState.Running {
			return m, nil
		}
		return m.startSession()

	case core.ActionNone:
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// startSession begins a new session immediately and starts a fresh tick loop.
func (m Model) startSession() (tea.Model, tea.Cmd) {
	start := core.NewInputFrame()
	start.Set(core.ActionStart)
	m.gameState = m.game.Step(start).State

	m.inputFrame.Clear()
	m.scoreSaved = false
	m.gen++
	return m, tickCmd(m.game.Interval(), m.gen)
}

// handleResize processes window resize events. The session keeps running;
// the game pauses itself while the window is too small.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, boardHeight(msg.Height))
	m.game.Resize(msg.Width, boardHeight(msg.Height))
	m.scoreboard.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks. The session is frozen while the
// scoreboard covers the board; the loop keeps running so play resumes as
// soon as it closes.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.showScores {
		return m, tickCmd(m.game.Interval(), m.gen)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		m.saveScore()
		return m, nil
	}

	return m, tickCmd(m.game.Interval(), m.gen)
}

// saveScore records the finished session once.
func (m *Model) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	s := m.game.Session()
	if m.store == nil || s.Score() == 0 {
		return
	}
	if _, err := m.store.SaveScore(s.ID(), m.player, s.Score(), s.Length()); err != nil {
		m.logger.Error("could not save score", "session", s.ID(), "error", err)
		return
	}
	m.refreshBest()
}

// refreshBest loads the best score into the HUD.
func (m *Model) refreshBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.HighScore()
	if err != nil {
		m.logger.Warn("could not load high score", "error", err)
		return
	}
	m.game.SetBest(best)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with the given model.
func Run(game *snake.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewModel(game, store, cfg, player, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
