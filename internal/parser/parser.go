// Package parser turns PGN text into chess.Game values.
//
// Parsing happens in two steps: the grammar package matches the text and
// builds a parse tree, then Extract walks that tree into the game model.
// A failure in either step returns no game at all.
package parser

import (
	"io"

	"go.uber.org/zap"

	"github.com/lgbarn/pgn-report-go/internal/chess"
	pgnerrors "github.com/lgbarn/pgn-report-go/internal/errors"
	"github.com/lgbarn/pgn-report-go/internal/grammar"
)

// Parser parses PGN games. A Parser holds no per-game state and is safe
// for concurrent use by multiple goroutines.
type Parser struct {
	logger *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// defaultParser backs the package-level functions.
var defaultParser = New()

// Parse parses a single game from text.
func Parse(text string) (*chess.Game, error) {
	return defaultParser.Parse(text)
}

// ParseReader reads r to the end and parses a single game from it.
func ParseReader(r io.Reader) (*chess.Game, error) {
	return defaultParser.ParseReader(r)
}

// Parse parses a single game from text.
// The error is a *errors.SyntaxError when the text is not valid PGN, or an
// *errors.ExtractionError when the parse tree is missing a required node.
func (p *Parser) Parse(text string) (*chess.Game, error) {
	tree, err := grammar.ParseGame(text)
	if err != nil {
		p.logger.Warn("grammar rejected input", zap.Error(err))
		return nil, err
	}

	game, err := Extract(tree)
	if err != nil {
		p.logger.Error("parse tree does not match the game model", zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{
		zap.Int("tags", len(game.Tags)),
		zap.Int("movePairs", len(game.Moves)),
		zap.Int("plies", game.PlyCount()),
		zap.Bool("comments", game.HasComments()),
		zap.String("result", game.Result),
	}
	if last := game.LastMove(); last != nil {
		fields = append(fields, zap.String("lastMove", last.Text))
	}
	p.logger.Debug("game parsed", fields...)
	return game, nil
}

// ParseReader reads r to the end and parses a single game from it.
// Read failures are returned as *errors.ReadError.
func (p *Parser) ParseReader(r io.Reader) (*chess.Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &pgnerrors.ReadError{Err: err}
	}
	return p.Parse(string(data))
}
