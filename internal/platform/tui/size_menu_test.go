package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

func TestBoardPresetsFitTerminal(t *testing.T) {
	presets := BoardPresets(config.GridConfig{Rows: 30, Cols: 30}, 100, 40)

	if presets[0].Rows != 30 || presets[0].Cols != 30 {
		t.Errorf("first preset = %+v, want the configured 30x30", presets[0])
	}

	fit := presets[len(presets)-1]
	if fit.Rows != 37 || fit.Cols != 50 {
		t.Errorf("fit preset = %dx%d, want 37x50", fit.Rows, fit.Cols)
	}
	if !fit.Fits(100, 40) {
		t.Error("fit preset should fit its own terminal")
	}
	if (BoardPreset{Rows: 40, Cols: 40}).Fits(100, 40) {
		t.Error("40x40 should not fit 100x40")
	}

	for _, p := range presets {
		cfg := config.DefaultSnakeConfig()
		cfg.Grid.Rows, cfg.Grid.Cols = p.Rows, p.Cols
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s is not a valid board: %v", p.Name, err)
		}
	}
}

func TestBoardPresetsTinyTerminal(t *testing.T) {
	presets := BoardPresets(config.GridConfig{Rows: 30, Cols: 30}, 2, 2)
	fit := presets[len(presets)-1]
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Rows, cfg.Grid.Cols = fit.Rows, fit.Cols
	if err := cfg.Validate(); err != nil {
		t.Errorf("fit preset %dx%d is not a valid board: %v", fit.Rows, fit.Cols, err)
	}
}

func TestShrinkToFit(t *testing.T) {
	tests := []struct {
		name       string
		grid       config.GridConfig
		w, h       int
		want       config.GridConfig
		wantShrunk bool
	}{
		{"classic on 80x24", config.GridConfig{Rows: 30, Cols: 30}, 80, 24, config.GridConfig{Rows: 21, Cols: 30}, true},
		{"classic on 60x33", config.GridConfig{Rows: 30, Cols: 30}, 60, 33, config.GridConfig{Rows: 30, Cols: 30}, false},
		{"too wide", config.GridConfig{Rows: 10, Cols: 50}, 80, 24, config.GridConfig{Rows: 10, Cols: 40}, true},
		{"small board", config.GridConfig{Rows: 12, Cols: 12}, 80, 24, config.GridConfig{Rows: 12, Cols: 12}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, shrunk := ShrinkToFit(tc.grid, tc.w, tc.h)
			if got != tc.want || shrunk != tc.wantShrunk {
				t.Errorf("ShrinkToFit() = %+v, %v; want %+v, %v", got, shrunk, tc.want, tc.wantShrunk)
			}
			if !(BoardPreset{Rows: got.Rows, Cols: got.Cols}).Fits(tc.w, tc.h) {
				t.Errorf("%dx%d does not fit %dx%d", got.Rows, got.Cols, tc.w, tc.h)
			}
		})
	}
}

func TestSizeMenuSelect(t *testing.T) {
	presets := BoardPresets(config.GridConfig{Rows: 30, Cols: 30}, 100, 40)
	var m tea.Model = NewSizeMenuModel(presets, 100, 40)

	if !strings.Contains(m.View(), "Select board size") {
		t.Errorf("View() = %q, want the menu title", m.View())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(runeKey("j"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("selecting should quit the menu program")
	}

	got := m.(SizeMenuModel).Selected()
	if got == nil || got.Name != "Classic" {
		t.Fatalf("Selected() = %+v, want Classic", got)
	}
}

func TestSizeMenuQuit(t *testing.T) {
	var m tea.Model = NewSizeMenuModel(BoardPresets(config.GridConfig{Rows: 30, Cols: 30}, 80, 24), 80, 24)
	m, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should quit the menu program")
	}
	if m.(SizeMenuModel).Selected() != nil {
		t.Error("quitting should not select a preset")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}
