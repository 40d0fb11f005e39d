package output

import (
	"github.com/lgbarn/pgn-report-go/internal/chess"
	"github.com/lgbarn/pgn-report-go/internal/config"
	"github.com/lgbarn/pgn-report-go/internal/grammar"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags     []JSONTag      `json:"tags"`
	Moves    []JSONMovePair `json:"moves"`
	Result   string         `json:"result"`
	PlyCount int            `json:"plyCount"`
}

// JSONTag is one tag pair. Tags are a list rather than an object so that
// order and duplicates survive.
type JSONTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// JSONMovePair represents a numbered pair of moves.
type JSONMovePair struct {
	MoveNumber int       `json:"moveNumber"`
	White      JSONMove  `json:"white"`
	Black      *JSONMove `json:"black,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	SAN     string `json:"san"`
	Kind    string `json:"kind"`
	Comment string `json:"comment,omitempty"`
}

// JSONError reports an input that failed to parse.
type JSONError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games  []*JSONGame `json:"games"`
	Errors []JSONError `json:"errors,omitempty"`
}

// GameToJSON converts a chess game to JSON format.
func GameToJSON(game *chess.Game, cfg *config.OutputConfig) *JSONGame {
	jg := &JSONGame{
		Tags:     make([]JSONTag, 0, len(game.Tags)),
		Moves:    make([]JSONMovePair, 0, len(game.Moves)),
		Result:   game.Result,
		PlyCount: game.PlyCount(),
	}

	for _, tag := range selectTags(game, cfg.TagFormat) {
		jg.Tags = append(jg.Tags, JSONTag{Name: tag.Name, Value: tag.Value})
	}

	for i := range game.Moves {
		pair := &game.Moves[i]
		jp := JSONMovePair{
			MoveNumber: moveNumber(*pair, i),
			White:      convertMove(&pair.White, cfg),
		}
		if pair.Black != nil {
			black := convertMove(pair.Black, cfg)
			jp.Black = &black
		}
		jg.Moves = append(jg.Moves, jp)
	}

	return jg
}

func convertMove(m *chess.Move, cfg *config.OutputConfig) JSONMove {
	return JSONMove{
		SAN:     m.Text,
		Kind:    grammar.ClassifyMove(m.Text).String(),
		Comment: commentText(m.Comment, cfg),
	}
}
