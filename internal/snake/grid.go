// Package snake implements the Snake game: a grid of cells, a snake that
// advances one cell per tick, apples, scoring and win/lose detection.
//
// The engine is front-end agnostic. Input arrives as directions or raw key
// names, output leaves through a Renderer and through Listener events.
package snake

import "fmt"

// Cell is the state of one grid position.
type Cell uint8

const (
	Air Cell = iota
	Wall
	Apple
	Head
	Body
)

func (c Cell) String() string {
	switch c {
	case Air:
		return "air"
	case Wall:
		return "wall"
	case Apple:
		return "apple"
	case Head:
		return "head"
	case Body:
		return "body"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// IsPassable reports whether the snake may move into a cell of this kind.
func IsPassable(c Cell) bool {
	return c == Air || c == Apple
}

// Coord is a 0-based grid position.
type Coord struct {
	Row, Col int
}

// Add returns c shifted by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is a rows x cols board whose outer ring is permanently Wall.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates a grid with an Air interior and a Wall border.
// It panics if either dimension is below 3.
func NewGrid(rows, cols int) *Grid {
	if rows < 3 || cols < 3 {
		panic(fmt.Sprintf("snake: grid %dx%d is smaller than 3x3", rows, cols))
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for r := range rows {
		for c := range cols {
			if g.onBorder(Coord{Row: r, Col: c}) {
				g.cells[r*cols+c] = Wall
			}
		}
	}
	return g
}

// Rows returns the number of rows, border included.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns, border included.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) onBorder(c Coord) bool {
	return c.Row == 0 || c.Col == 0 || c.Row == g.rows-1 || c.Col == g.cols-1
}

func (g *Grid) index(c Coord) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("snake: %v is outside the %dx%d grid", c, g.rows, g.cols))
	}
	return c.Row*g.cols + c.Col
}

// Get returns the cell at c. It panics when c is out of range.
func (g *Grid) Get(c Coord) Cell {
	return g.cells[g.index(c)]
}

// Set changes the cell at c. Walls are fixed: writing to a wall cell or
// writing Wall anywhere panics, as does an out of range c.
func (g *Grid) Set(c Coord, cell Cell) {
	i := g.index(c)
	if g.cells[i] == Wall {
		panic(fmt.Sprintf("snake: cannot overwrite wall at %v", c))
	}
	if cell == Wall {
		panic(fmt.Sprintf("snake: cannot place wall at %v", c))
	}
	g.cells[i] = cell
}

// Interior returns the number of cells inside the wall border.
func (g *Grid) Interior() int {
	return (g.rows - 2) * (g.cols - 2)
}

// Count returns how many cells hold the given state.
func (g *Grid) Count(cell Cell) int {
	n := 0
	for _, c := range g.cells {
		if c == cell {
			n++
		}
	}
	return n
}

// Full reports whether no Air or Apple cell is left, i.e. the snake covers
// the whole interior.
func (g *Grid) Full() bool {
	for _, c := range g.cells {
		if IsPassable(c) {
			return false
		}
	}
	return true
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Coord, Cell)) {
	for i, cell := range g.cells {
		fn(Coord{Row: i / g.cols, Col: i % g.cols}, cell)
	}
}
