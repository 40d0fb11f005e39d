// Package chess provides the game record types produced by the PGN parser.
package chess

// Rank represents a chess rank (row) - '1' to '8'.
type Rank byte

// Col represents a chess file (column) - 'a' to 'h'.
type Col byte

// Constants for board coordinates.
const (
	BoardSize = 8

	RankBase  = '1'
	ColBase   = 'a'
	FirstRank = RankBase
	LastRank  = RankBase + BoardSize - 1
	FirstCol  = ColBase
	LastCol   = ColBase + BoardSize - 1
)

// IsRank returns true if c is a rank character.
func IsRank(c byte) bool {
	return c >= FirstRank && c <= LastRank
}

// IsCol returns true if c is a file character.
func IsCol(c byte) bool {
	return c >= FirstCol && c <= LastCol
}

// IsPieceLetter returns true for the SAN letters of the pieces that move by name.
func IsPieceLetter(c byte) bool {
	switch c {
	case 'K', 'Q', 'R', 'B', 'N':
		return true
	}
	return false
}

// IsPromotionLetter returns true for the pieces a pawn may promote to.
func IsPromotionLetter(c byte) bool {
	switch c {
	case 'Q', 'R', 'B', 'N':
		return true
	}
	return false
}

// Game results.
const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultUnknown   = "*"
)

// Results lists the canonical result tokens.
var Results = []string{ResultWhiteWins, ResultBlackWins, ResultDraw, ResultUnknown}

// IsResult returns true if s is one of the canonical result tokens.
func IsResult(s string) bool {
	for _, r := range Results {
		if s == r {
			return true
		}
	}
	return false
}
