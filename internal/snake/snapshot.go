package snake

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	State    State
	Score    int
	Length   int
	HeadRow  int
	HeadCol  int
	Dir      Direction
	Pending  Direction
	AppleRow int
	AppleCol int
	HasApple bool
	Paused   bool
}

// Snapshot returns the current game snapshot for determinism verification.
// The session ID is omitted; it is random.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	head := s.Head()
	apple, hasApple := s.Apple()

	return Snapshot{
		Tick:     s.Ticks(),
		State:    s.State(),
		Score:    s.Score(),
		Length:   s.Length(),
		HeadRow:  head.Row,
		HeadCol:  head.Col,
		Dir:      s.Direction(),
		Pending:  s.Pending(),
		AppleRow: apple.Row,
		AppleCol: apple.Col,
		HasApple: hasApple,
		Paused:   g.paused,
	}
}
