package snake

import "testing"

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewGridBorder(t *testing.T) {
	g := NewGrid(5, 6)

	if got := g.Interior(); got != 12 {
		t.Errorf("Interior() = %d, want 12", got)
	}
	if got := g.Count(Air); got != 12 {
		t.Errorf("Count(Air) = %d, want 12", got)
	}
	if got := g.Count(Wall); got != 18 {
		t.Errorf("Count(Wall) = %d, want 18", got)
	}

	g.Each(func(c Coord, cell Cell) {
		border := c.Row == 0 || c.Col == 0 || c.Row == 4 || c.Col == 5
		if border && cell != Wall {
			t.Errorf("border cell %v = %v, want wall", c, cell)
		}
		if !border && cell != Air {
			t.Errorf("interior cell %v = %v, want air", c, cell)
		}
	})
}

func TestGridPanics(t *testing.T) {
	g := NewGrid(4, 4)

	mustPanic(t, "too small", func() { NewGrid(2, 10) })
	mustPanic(t, "get out of range", func() { g.Get(Coord{Row: 4, Col: 0}) })
	mustPanic(t, "get negative", func() { g.Get(Coord{Row: 0, Col: -1}) })
	mustPanic(t, "set out of range", func() { g.Set(Coord{Row: 1, Col: 9}, Air) })
	mustPanic(t, "overwrite wall", func() { g.Set(Coord{Row: 0, Col: 0}, Air) })
	mustPanic(t, "place wall", func() { g.Set(Coord{Row: 1, Col: 1}, Wall) })
}

func TestIsPassable(t *testing.T) {
	tests := []struct {
		cell Cell
		want bool
	}{
		{Air, true},
		{Apple, true},
		{Wall, false},
		{Head, false},
		{Body, false},
	}

	for _, tc := range tests {
		if got := IsPassable(tc.cell); got != tc.want {
			t.Errorf("IsPassable(%v) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestGridFull(t *testing.T) {
	g := NewGrid(4, 4)
	cells := []Coord{{1, 1}, {1, 2}, {2, 2}, {2, 1}}

	for i, c := range cells {
		if g.Full() {
			t.Fatalf("grid reported full with %d cells set", i)
		}
		g.Set(c, Body)
	}
	if !g.Full() {
		t.Error("grid should be full once every interior cell is body")
	}

	g.Set(cells[0], Apple)
	if g.Full() {
		t.Error("an apple cell keeps the grid from being full")
	}
}
