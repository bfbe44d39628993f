package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Renderer is a drawing target for the board. Coordinates are grid cells;
// the renderer scales them to its own units.
type Renderer interface {
	// CreateSurface prepares a drawing area of the given pixel size.
	CreateSurface(widthPx, heightPx int)
	// DrawCell fills a cell with a colour.
	DrawCell(c Coord, color core.Color)
	// ClearCell restores a cell to the board background.
	ClearCell(c Coord)
}

// Color returns the palette colour for a cell kind.
func (s *Session) Color(cell Cell) core.Color {
	p := s.cfg.Palette
	switch cell {
	case Wall:
		return p.Wall
	case Apple:
		return p.Apple
	case Head:
		return p.Head
	case Body:
		return p.Body
	default:
		return p.Board
	}
}

// Paint creates a surface sized for the whole board and draws every cell.
func (s *Session) Paint(r Renderer) {
	tile := s.cfg.Palette.TileSize
	r.CreateSurface(s.grid.Cols()*tile, s.grid.Rows()*tile)
	s.grid.Each(func(c Coord, _ Cell) {
		s.draw(r, c)
	})
	s.dirty.clear()
}

// Flush redraws only the cells changed since the last Paint or Flush and
// returns how many were drawn.
func (s *Session) Flush(r Renderer) int {
	n := len(s.dirty.cells)
	for _, c := range s.dirty.cells {
		s.draw(r, c)
	}
	s.dirty.clear()
	return n
}

func (s *Session) draw(r Renderer, c Coord) {
	cell := s.grid.Get(c)
	if cell == Air {
		r.ClearCell(c)
		return
	}
	r.DrawCell(c, s.Color(cell))
}

// dirtySet keeps changed cells in first-change order without duplicates.
type dirtySet struct {
	cols   int
	marked []bool
	cells  []Coord
}

// reset marks every cell of g, so a fresh board is fully redrawn.
func (d *dirtySet) reset(g *Grid) {
	d.cols = g.Cols()
	d.marked = make([]bool, g.Rows()*g.Cols())
	d.cells = d.cells[:0]
	g.Each(func(c Coord, _ Cell) {
		d.mark(c)
	})
}

func (d *dirtySet) mark(c Coord) {
	i := c.Row*d.cols + c.Col
	if d.marked[i] {
		return
	}
	d.marked[i] = true
	d.cells = append(d.cells, c)
}

func (d *dirtySet) clear() {
	for _, c := range d.cells {
		d.marked[c.Row*d.cols+c.Col] = false
	}
	d.cells = d.cells[:0]
}
