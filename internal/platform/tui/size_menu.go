package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// BoardPreset is one board size offered by the size menu. Sizes include
// the wall border.
type BoardPreset struct {
	Name string
	Rows int
	Cols int
}

// BoardPresets returns the menu choices for a terminal of the given size.
// The configured board comes first; the last choice fills the terminal.
func BoardPresets(cfg config.GridConfig, screenW, screenH int) []BoardPreset {
	presets := []BoardPreset{
		{Name: "Configured", Rows: cfg.Rows, Cols: cfg.Cols},
		{Name: "Small", Rows: 12, Cols: 12},
		{Name: "Classic", Rows: 30, Cols: 30},
		{Name: "Large", Rows: 40, Cols: 40},
	}

	return append(presets, fitTerminal(screenW, screenH))
}

// fitTerminal is the largest board a terminal of the given size can show.
func fitTerminal(screenW, screenH int) BoardPreset {
	// Two columns per cell, and rows for the HUD and the help line
	return BoardPreset{Name: "Fit terminal", Rows: max(3, screenH-3), Cols: max(4, screenW/2)}
}

// ShrinkToFit returns grid reduced to fit the terminal, and whether it had
// to shrink. Dimensions that already fit are kept.
func ShrinkToFit(grid config.GridConfig, screenW, screenH int) (config.GridConfig, bool) {
	if (BoardPreset{Rows: grid.Rows, Cols: grid.Cols}).Fits(screenW, screenH) {
		return grid, false
	}
	fit := fitTerminal(screenW, screenH)
	return config.GridConfig{Rows: min(grid.Rows, fit.Rows), Cols: min(grid.Cols, fit.Cols)}, true
}

// Fits reports whether the preset can be drawn in a terminal of the given size.
func (p BoardPreset) Fits(screenW, screenH int) bool {
	return p.Cols*2 <= screenW && p.Rows+3 <= screenH
}

// sizeMenuKeys are the bindings of the size menu.
type sizeMenuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultSizeMenuKeys() sizeMenuKeys {
	return sizeMenuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// SizeMenuModel lets the player pick a board size before the game starts.
type SizeMenuModel struct {
	presets  []BoardPreset
	cursor   int
	width    int
	height   int
	keys     sizeMenuKeys
	selected *BoardPreset
	quitting bool
}

// NewSizeMenuModel creates a size menu over presets.
func NewSizeMenuModel(presets []BoardPreset, width, height int) SizeMenuModel {
	return SizeMenuModel{
		presets: presets,
		width:   width,
		height:  height,
		keys:    defaultSizeMenuKeys(),
	}
}

// Init initializes the model.
func (m SizeMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SizeMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			p := m.presets[m.cursor]
			m.selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the menu.
func (m SizeMenuModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select board size:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-12s %3dx%-3d", cursor, p.Name, p.Rows, p.Cols)
		if !p.Fits(m.width, m.height) {
			line += " (too big)"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or nil if none was chosen.
func (m SizeMenuModel) Selected() *BoardPreset {
	return m.selected
}

// RunSizeSelector shows the size menu and returns the choice, or nil when
// the player quit.
func RunSizeSelector(presets []BoardPreset, cfg core.RuntimeConfig) (*BoardPreset, error) {
	p := tea.NewProgram(
		NewSizeMenuModel(presets, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SizeMenuModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
