package chess

// Comment represents a PGN comment, without the surrounding braces.
type Comment struct {
	Text string
}

// Move is a single half-move as written in the game text.
type Move struct {
	// The move text (e.g., "Nf3", "e4", "O-O", "Qe8#").
	Text string

	// Comment following the move, or nil.
	Comment *Comment
}

// HasComment returns true if a comment follows the move.
func (m *Move) HasComment() bool {
	return m != nil && m.Comment != nil
}

// MovePair is one numbered move: White's half-move and, unless the game
// stops after it, Black's reply.
type MovePair struct {
	// Move number as written in the source. It is not checked for continuity.
	Number int

	White Move

	// Black is nil when the game ends after White's move.
	Black *Move
}

// Plies returns the number of half-moves in the pair (1 or 2).
func (p *MovePair) Plies() int {
	if p.Black == nil {
		return 1
	}
	return 2
}
