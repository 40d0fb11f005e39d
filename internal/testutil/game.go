package testutil

import (
	"os"
	"testing"

	"github.com/lgbarn/pgn-report-go/internal/chess"
	"github.com/lgbarn/pgn-report-go/internal/parser"
)

// ParseTestGame parses a PGN string and returns the game, or nil if parsing
// fails. Use this for tests where parse failure is an acceptable outcome.
func ParseTestGame(pgn string) *chess.Game {
	game, err := parser.Parse(pgn)
	if err != nil {
		return nil
	}
	return game
}

// MustParseGame parses a PGN string and returns the game.
// It calls t.Fatal if parsing fails.
func MustParseGame(t testing.TB, pgn string) *chess.Game {
	t.Helper()
	game, err := parser.Parse(pgn)
	if err != nil {
		t.Fatalf("failed to parse test game: %v\n%s", err, pgn)
	}
	return game
}

// ReadFixture returns the contents of the file at path.
// It calls t.Fatal if the file cannot be read.
func ReadFixture(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", path, err)
	}
	return string(data)
}

// MustParseFixture reads and parses the game stored at path.
func MustParseFixture(t testing.TB, path string) *chess.Game {
	t.Helper()
	return MustParseGame(t, ReadFixture(t, path))
}
