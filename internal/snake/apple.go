package snake

// placeApple puts a new apple on a uniformly chosen Air cell.
// Random probes over the interior are tried first, bounded by the interior
// size; a scan over all Air cells follows so placement always terminates.
// Callers check for a full board first: with no Air left placeApple panics.
func (s *Session) placeApple() {
	rows, cols := s.grid.Rows()-2, s.grid.Cols()-2

	for range s.grid.Interior() {
		c := Coord{Row: 1 + s.rng.Intn(rows), Col: 1 + s.rng.Intn(cols)}
		if s.grid.Get(c) == Air {
			s.putApple(c)
			return
		}
	}

	free := s.freeCells()
	if len(free) == 0 {
		panic("snake: no free cell left for an apple")
	}
	s.putApple(free[s.rng.Intn(len(free))])
}

// freeCells lists every Air cell in row-major order.
func (s *Session) freeCells() []Coord {
	var free []Coord
	s.grid.Each(func(c Coord, cell Cell) {
		if cell == Air {
			free = append(free, c)
		}
	})
	return free
}

func (s *Session) putApple(c Coord) {
	s.set(c, Apple)
	s.apple = c
	s.hasApple = true
}
