package chess

// Game represents a parsed game: its tags, its moves and its result.
// A Game is built in full by the parser and is not modified afterwards.
type Game struct {
	// Tags in the order they appear. Names may repeat.
	Tags []Tag

	// The move list of the game, one entry per move number.
	Moves []MovePair

	// One of ResultWhiteWins, ResultBlackWins, ResultDraw or ResultUnknown.
	Result string
}

// GetTag returns the value of the first tag with the given name,
// or empty string if not present.
func (g *Game) GetTag(name string) string {
	for _, t := range g.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// TagValues returns the values of every tag with the given name, in order.
func (g *Game) TagValues(name string) []string {
	var values []string
	for _, t := range g.Tags {
		if t.Name == name {
			values = append(values, t.Value)
		}
	}
	return values
}

// HasTag returns true if the tag is present.
func (g *Game) HasTag(name string) bool {
	for _, t := range g.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// White returns the White player name.
func (g *Game) White() string {
	return g.GetTag("White")
}

// Black returns the Black player name.
func (g *Game) Black() string {
	return g.GetTag("Black")
}

// Event returns the event name.
func (g *Game) Event() string {
	return g.GetTag("Event")
}

// Site returns the site name.
func (g *Game) Site() string {
	return g.GetTag("Site")
}

// Date returns the date string.
func (g *Game) Date() string {
	return g.GetTag("Date")
}

// Round returns the round string.
func (g *Game) Round() string {
	return g.GetTag("Round")
}

// PlyCount returns the number of half-moves in the game.
func (g *Game) PlyCount() int {
	count := 0
	for i := range g.Moves {
		count += g.Moves[i].Plies()
	}
	return count
}

// LastMove returns the last half-move in the game, or nil if no moves.
func (g *Game) LastMove() *Move {
	if len(g.Moves) == 0 {
		return nil
	}
	last := &g.Moves[len(g.Moves)-1]
	if last.Black != nil {
		return last.Black
	}
	return &last.White
}

// HasComments returns true if any move carries a comment.
func (g *Game) HasComments() bool {
	for i := range g.Moves {
		if g.Moves[i].White.HasComment() || g.Moves[i].Black.HasComment() {
			return true
		}
	}
	return false
}
