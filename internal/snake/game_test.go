package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(testConfig(30, 30))
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 40})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	inputs := map[int]core.Action{
		0:  core.ActionStart,
		5:  core.ActionUp,
		12: core.ActionRight,
		20: core.ActionDown,
		26: core.ActionLeft,
	}

	for i := range 60 {
		in := frame(inputs[i])
		g1.Step(in)
		g2.Step(in)

		if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
			t.Fatalf("step %d: snapshots differ\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestStepWaitsForStart(t *testing.T) {
	g := newTestGame(t, 1)

	res := g.Step(frame(core.ActionLeft))
	if res.Ticked || res.State.Running {
		t.Errorf("Step before start = %+v, want idle", res)
	}

	res = g.Step(frame(core.ActionStart))
	if res.Ticked {
		t.Error("the start frame must not tick")
	}
	if !res.State.Running {
		t.Fatal("Start action should begin a session")
	}

	res = g.Step(frame())
	if !res.Ticked || g.Session().Ticks() != 1 {
		t.Errorf("Step while running should tick once, got %+v", res)
	}
}

func TestPauseFreezesSession(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(frame(core.ActionStart))

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused || res.Ticked {
		t.Fatalf("pause frame = %+v", res)
	}
	head := g.Session().Head()
	for range 5 {
		g.Step(frame())
	}
	if g.Session().Head() != head {
		t.Error("snake moved while paused")
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused || !res.Ticked {
		t.Errorf("unpause frame = %+v", res)
	}
}

func TestFrameDirectionsApplyInOrder(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(frame(core.ActionStart))
	s := g.Session()
	moveApple(t, s, Coord{Row: 1, Col: 1})
	head := s.Head()

	// Right is measured against the applied Left and dropped
	g.Step(frame(core.ActionUp, core.ActionRight))
	if want := head.Add(Up.Delta()); s.Head() != want {
		t.Errorf("Head() = %v, want %v", s.Head(), want)
	}

	// Down then Left: Down is rejected against Up, Left wins
	head = s.Head()
	g.Step(frame(core.ActionDown, core.ActionLeft))
	if want := head.Add(Left.Delta()); s.Head() != want {
		t.Errorf("Head() = %v, want %v", s.Head(), want)
	}
}

func TestRestartAfterLoss(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(frame(core.ActionStart))
	moveApple(t, g.Session(), Coord{Row: 28, Col: 28})
	first := g.Session().ID()

	var res core.StepResult
	for range 20 {
		res = g.Step(frame())
		if res.State.GameOver {
			break
		}
	}
	if !res.State.GameOver || res.State.Won {
		t.Fatalf("expected a loss against the left wall, got %+v", res.State)
	}

	res = g.Step(frame())
	if res.Ticked {
		t.Error("a finished game must not tick")
	}

	res = g.Step(frame(core.ActionStart))
	if !res.State.Running || res.State.Score != 0 {
		t.Errorf("restart state = %+v", res.State)
	}
	if g.Session().ID() == first {
		t.Error("restart should start a new session")
	}
}

func TestRenderBoardAndHUD(t *testing.T) {
	g := newTestGame(t, 1)
	g.SetBest(120)
	g.Step(frame(core.ActionStart))

	screen := core.NewScreen(80, 40)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"Score: 0", "Length: 1", "Best: 120"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	// Board is 60 columns wide, centred in 80
	top := screen.Row(hudHeight)
	if got := strings.Count(top, string(cellRune)); got != 60 {
		t.Errorf("top wall has %d blocks, want 60", got)
	}
	if c := screen.GetCell(10, hudHeight); c.Rune != cellRune || c.Color != "#c8c8c8" {
		t.Errorf("wall cell = %+v", c)
	}

	head := g.Session().Head()
	c := screen.GetCell(10+head.Col*cellWidth, hudHeight+head.Row)
	if c.Color != "#800080" {
		t.Errorf("head cell = %+v", c)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 40)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Press Enter to start") {
		t.Error("missing start prompt before the first session")
	}

	g.Step(frame(core.ActionStart))
	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("missing pause overlay")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New(testConfig(30, 30))
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 40, ScreenH: 20})
	g.Step(frame(core.ActionStart))

	if res := g.Step(frame()); res.Ticked {
		t.Error("game should not tick while the window is too small")
	}

	screen := core.NewScreen(40, 20)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("missing size warning")
	}

	g.Resize(80, 40)
	if res := g.Step(frame()); !res.Ticked {
		t.Error("game should resume after growing the window")
	}
}

func TestGameListenersFollowReset(t *testing.T) {
	g := New(testConfig(10, 10))
	rec := &eventRecorder{}
	g.Subscribe(rec)

	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 40})
	g.Step(frame(core.ActionStart))
	g.Reset(core.RuntimeConfig{Seed: 2, ScreenW: 80, ScreenH: 40})
	g.Step(frame(core.ActionStart))

	if got := rec.count(GameStarted); got != 2 {
		t.Errorf("GameStarted delivered %d times, want 2", got)
	}
}
