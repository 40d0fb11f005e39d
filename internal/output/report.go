package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/pgn-report-go/internal/chess"
	"github.com/lgbarn/pgn-report-go/internal/config"
)

// OutputReport writes a human-readable report of game: an aligned tag
// block, one line per move pair with White and Black in columns, and the
// result.
func OutputReport(w io.Writer, game *chess.Game, cfg *config.OutputConfig) error {
	var sb strings.Builder

	if tags := selectTags(game, cfg.TagFormat); len(tags) > 0 {
		writeTagBlock(&sb, tags)
		sb.WriteByte('\n')
	}
	if len(game.Moves) > 0 {
		writeMoveColumns(&sb, game.Moves, cfg)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Result: %s\n", game.Result)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTagBlock(sb *strings.Builder, tags []chess.Tag) {
	width := 0
	for _, tag := range tags {
		width = max(width, len(tag.Name)+1)
	}
	for _, tag := range tags {
		fmt.Fprintf(sb, "%-*s %s\n", width, tag.Name+":", tag.Value)
	}
}

// moveCell renders a move and its comment for one column.
func moveCell(m *chess.Move, cfg *config.OutputConfig) string {
	if m == nil {
		return ""
	}
	if text := commentText(m.Comment, cfg); text != "" {
		return m.Text + " {" + text + "}"
	}
	return m.Text
}

func writeMoveColumns(sb *strings.Builder, pairs []chess.MovePair, cfg *config.OutputConfig) {
	numWidth, whiteWidth := 0, 0
	whites := make([]string, len(pairs))
	for i := range pairs {
		numWidth = max(numWidth, len(strconv.Itoa(moveNumber(pairs[i], i))))
		whites[i] = moveCell(&pairs[i].White, cfg)
		whiteWidth = max(whiteWidth, len(whites[i]))
	}

	for i := range pairs {
		line := fmt.Sprintf("%*d. %-*s  %s", numWidth, moveNumber(pairs[i], i), whiteWidth, whites[i], moveCell(pairs[i].Black, cfg))
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
}

// OutputError writes the report shown in place of a game that failed to parse.
func OutputError(w io.Writer, name string, err error) error {
	if name == "" {
		name = "-"
	}
	_, werr := fmt.Fprintf(w, "%s: %v\n", name, err)
	return werr
}
