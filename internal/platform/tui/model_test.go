package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *storage.Store) {
	t.Helper()

	store, err := storage.Open()
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Rows, cfg.Grid.Cols = 10, 10
	game := snake.New(cfg)

	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 1}, "tester", nil)
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runeKey("w"), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey("j"), core.ActionDown},
		{runeKey("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStart},
		{runeKey("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionScores},
		{runeKey("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey("x"), core.ActionNone},
	}

	for _, tc := range tests {
		if got := keys.Action(tc.msg); got != tc.want {
			t.Errorf("Action(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestModelIdleUntilStart(t *testing.T) {
	m, _ := newTestModel(t)

	if cmd := m.Init(); cmd != nil {
		t.Error("Init should not start the tick loop")
	}
	if !strings.Contains(m.View(), "Press Enter to start") {
		t.Error("expected start prompt")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("starting a session should schedule a tick")
	}
	if !m.gameState.Running {
		t.Error("session should be running after Enter")
	}
}

func TestTickLoopStopsWhenGameEnds(t *testing.T) {
	m, store := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	var cmd tea.Cmd
	for i := 0; i < 100; i++ {
		m, cmd = update(t, m, TickMsg{gen: m.gen})
		if cmd == nil {
			break
		}
	}

	if cmd != nil {
		t.Fatal("tick loop never stopped")
	}
	if !m.gameState.GameOver {
		t.Fatalf("loop stopped while the game is %+v", m.gameState)
	}
	if !m.scoreSaved {
		t.Error("finished session should be marked as saved")
	}

	// The snake heads left into the wall; any apple eaten on the way is recorded
	if score := m.game.Session().Score(); score > 0 {
		high, err := store.HighScore()
		if err != nil || high != score {
			t.Errorf("HighScore() = %d, %v; want %d", high, err, score)
		}
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := m.gen - 1

	m, cmd := update(t, m, TickMsg{gen: stale})
	if cmd != nil || m.game.Session().Ticks() != 0 {
		t.Error("a tick from an older loop must be ignored")
	}
}

func TestDirectionKeysQueueUntilTick(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	head := m.game.Session().Head()

	m, _ = update(t, m, runeKey("w"))
	if m.game.Session().Head() != head {
		t.Fatal("keys must not move the snake before the tick")
	}

	m, _ = update(t, m, TickMsg{gen: m.gen})
	if m.game.Session().Ticks() != 1 {
		t.Fatalf("Ticks() = %d, want 1", m.game.Session().Ticks())
	}
	if m.game.Session().Direction() != snake.Up {
		t.Errorf("Direction() = %v, want up", m.game.Session().Direction())
	}
	if len(m.inputFrame.Actions) != 0 {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestScoreboardToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showScores || !strings.Contains(m.View(), "HIGH SCORES") {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty leaderboard should say so")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showScores {
		t.Error("tab should close the scoreboard")
	}
}

func TestScoreboardFreezesRunningGame(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showScores {
		t.Fatal("tab should open the scoreboard")
	}

	var cmd tea.Cmd
	for i := 0; i < 20; i++ {
		m, cmd = update(t, m, TickMsg{gen: m.gen})
		if cmd == nil {
			t.Fatalf("tick %d: loop stopped while the scoreboard was open", i)
		}
	}
	s := m.game.Session()
	if s.Ticks() != 0 || s.State() != snake.Running {
		t.Fatalf("scoreboard open: ticks=%d state=%v, want 0 and running", s.Ticks(), s.State())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, TickMsg{gen: m.gen})
	if got := m.game.Session().Ticks(); got != 1 {
		t.Errorf("Ticks() = %d after closing the scoreboard, want 1", got)
	}
}

func TestScoreboardBackKey(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, runeKey("b"))
	if m.showScores {
		t.Error("b should close the scoreboard")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(t, m, runeKey("q"))
	if cmd == nil || !m.quitting || m.View() != "" {
		t.Error("q should quit with an empty view")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", "#ff0000")
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, '█', "#00ff00")

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output %q missing %q", out, want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestEventLoggerWritesDebugLines(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	cfg := config.DefaultSnakeConfig()
	s := snake.NewSession(cfg, 1)
	s.Subscribe(EventLogger(logger))
	s.Start()

	out := buf.String()
	if !strings.Contains(out, "game_started") || !strings.Contains(out, s.ID().String()) {
		t.Errorf("log output = %q", out)
	}
}
