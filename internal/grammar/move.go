package grammar

import (
	"strings"

	"github.com/lgbarn/pgn-report-go/internal/chess"
)

// Move character classification table
var moveChars [256]bool

func init() {
	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	// Files (a-h) and ranks (1-8)
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}

	for _, c := range []byte{'K', 'Q', 'R', 'B', 'N'} {
		moveChars[c] = true
	}

	// Capture, promotion, castling, check
	for _, c := range []byte{'x', '=', 'O', '0', '-', '+', '#'} {
		moveChars[c] = true
	}
}

// MoveKind classifies a SAN move token.
type MoveKind int

const (
	InvalidMove MoveKind = iota
	PawnMove
	PawnCapture
	Promotion
	PieceMove
	PieceCapture
	KingsideCastle
	QueensideCastle
)

var moveKindNames = []string{
	"invalid", "pawn", "pawn capture", "promotion",
	"piece", "piece capture", "kingside castle", "queenside castle",
}

func (k MoveKind) String() string {
	if k < 0 || int(k) >= len(moveKindNames) {
		return "unknown"
	}
	return moveKindNames[k]
}

// ClassifyMove checks text against the SAN move grammar and reports what
// kind of move it spells. Only the notation is checked, never the position.
func ClassifyMove(text string) MoveKind {
	// A single trailing check or mate marker
	if n := len(text); n > 0 && (text[n-1] == '+' || text[n-1] == '#') {
		text = text[:n-1]
	}

	switch text {
	case "O-O", "0-0":
		return KingsideCastle
	case "O-O-O", "0-0-0":
		return QueensideCastle
	case "":
		return InvalidMove
	}

	switch {
	case chess.IsPieceLetter(text[0]):
		return classifyPieceMove(text[1:])
	case chess.IsCol(text[0]):
		return classifyPawnMove(text)
	}
	return InvalidMove
}

// ValidMove returns true if text is a well-formed SAN move.
func ValidMove(text string) bool {
	return ClassifyMove(text) != InvalidMove
}

// classifyPieceMove checks what follows the piece letter:
// [file|rank|square] [x] square.
func classifyPieceMove(s string) MoveKind {
	n := len(s)
	if n < 2 || !chess.IsCol(s[n-2]) || !chess.IsRank(s[n-1]) {
		return InvalidMove
	}

	kind := PieceMove
	rest := s[:n-2]
	if strings.HasSuffix(rest, "x") {
		kind = PieceCapture
		rest = rest[:len(rest)-1]
	}

	switch len(rest) {
	case 0:
		return kind
	case 1:
		// Nbd7, R1e2
		if chess.IsCol(rest[0]) || chess.IsRank(rest[0]) {
			return kind
		}
	case 2:
		// Qh4e1
		if chess.IsCol(rest[0]) && chess.IsRank(rest[1]) {
			return kind
		}
	}
	return InvalidMove
}

// classifyPawnMove checks e4, exd5 and their promotions e8=Q, exd1N.
func classifyPawnMove(s string) MoveKind {
	promoted := false
	if n := len(s); n > 2 && chess.IsPromotionLetter(s[n-1]) {
		promoted = true
		s = strings.TrimSuffix(s[:n-1], "=")
	}

	var kind MoveKind
	var toRank byte
	switch {
	case len(s) == 2 && chess.IsRank(s[1]):
		kind = PawnMove
		toRank = s[1]
	case len(s) == 4 && s[1] == 'x' && chess.IsCol(s[2]) && chess.IsRank(s[3]):
		// Captures go to an adjacent file
		if s[0] != s[2]+1 && s[0]+1 != s[2] {
			return InvalidMove
		}
		kind = PawnCapture
		toRank = s[3]
	default:
		return InvalidMove
	}

	if promoted {
		if toRank != chess.FirstRank && toRank != chess.LastRank {
			return InvalidMove
		}
		return Promotion
	}
	return kind
}
