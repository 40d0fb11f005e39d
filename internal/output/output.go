// Package output renders parsed games as reports, JSON or PGN.
package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/lgbarn/pgn-report-go/internal/chess"
	"github.com/lgbarn/pgn-report-go/internal/config"
)

// clockAnnotationRegex matches clock annotations like [%clk H:MM:SS] or [%clk H:MM:SS.d]
var clockAnnotationRegex = regexp.MustCompile(`\[%clk\s+\d+:\d{2}:\d{2}(?:\.\d+)?\]`)

// stripClockAnnotations removes clock annotations from comment text.
func stripClockAnnotations(text string) string {
	return strings.TrimSpace(clockAnnotationRegex.ReplaceAllString(text, ""))
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = config.DefaultMaxLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Write writes a string, adding a space separator if needed.
// A token longer than the line is written on a line of its own.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
			o.needsSpace = false
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error, if any.
func (o *OutputWriter) Err() error {
	return o.err
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// selectTags returns the tags to show for form. The seven tag roster is
// always complete and in roster order; AllTags keeps the game's own order.
func selectTags(game *chess.Game, form config.TagOutputForm) []chess.Tag {
	switch form {
	case config.NoTags:
		return nil
	case config.SevenTagRoster:
		return rosterTags(game)
	}
	return game.Tags
}

// rosterTags fills the seven tag roster from game. A missing Result tag
// takes the game's result and any other missing tag is "?".
func rosterTags(game *chess.Game) []chess.Tag {
	tags := make([]chess.Tag, 0, len(chess.SevenTagRoster))
	for _, name := range chess.SevenTagRoster {
		var value string
		switch {
		case game.HasTag(name):
			value = game.GetTag(name)
		case name == "Result":
			value = game.Result
		default:
			value = "?"
		}
		tags = append(tags, chess.Tag{Name: name, Value: value})
	}
	return tags
}

// commentText returns the comment body to print, or "" when the comment is
// absent, dropped by configuration, or empty after clock stripping.
func commentText(c *chess.Comment, cfg *config.OutputConfig) string {
	if c == nil || !cfg.KeepComments {
		return ""
	}
	text := c.Text
	if cfg.StripClockAnnotations {
		text = stripClockAnnotations(text)
	}
	return text
}

// outputTags writes tags in PGN export order: the seven tag roster first,
// then any other tags in the order they were read. With AllTags a repeated
// roster tag follows its first occurrence.
func outputTags(w io.Writer, game *chess.Game, cfg *config.OutputConfig) error {
	if cfg.TagFormat == config.NoTags {
		return nil
	}

	roster := rosterTags(game)
	tags := roster
	if cfg.TagFormat != config.SevenTagRoster {
		tags = make([]chess.Tag, 0, len(roster)+len(game.Tags))
		for _, tag := range roster {
			tags = append(tags, tag)
			if values := game.TagValues(tag.Name); len(values) > 1 {
				for _, v := range values[1:] {
					tags = append(tags, chess.Tag{Name: tag.Name, Value: v})
				}
			}
		}
		for _, tag := range game.Tags {
			if !chess.IsSevenTagRosterTag(tag.Name) {
				tags = append(tags, tag)
			}
		}
	}

	for _, tag := range tags {
		if _, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag.Name, escapeTagValue(tag.Value)); err != nil {
			return err
		}
	}
	return nil
}

// outputMoves writes the movetext wrapped at the configured width.
func outputMoves(w io.Writer, game *chess.Game, cfg *config.OutputConfig) error {
	ow := NewOutputWriter(w, int(cfg.MaxLineLength))

	for i, pair := range game.Moves {
		ow.Write(fmt.Sprintf("%d.", moveNumber(pair, i)))
		outputMove(ow, &pair.White, cfg)
		if pair.Black != nil {
			outputMove(ow, pair.Black, cfg)
		}
	}

	ow.Write(game.Result)
	ow.NewLine()
	return ow.Err()
}

// moveNumber returns the number written for the pair at index i, falling
// back to its position for pairs built without one.
func moveNumber(pair chess.MovePair, i int) int {
	if pair.Number > 0 {
		return pair.Number
	}
	return i + 1
}

func outputMove(ow *OutputWriter, m *chess.Move, cfg *config.OutputConfig) {
	ow.Write(m.Text)
	if text := commentText(m.Comment, cfg); text != "" {
		ow.Write("{" + text + "}")
	}
}

// OutputGame writes a game as PGN: tags, a blank line, movetext and a
// trailing blank line.
func OutputGame(w io.Writer, game *chess.Game, cfg *config.OutputConfig) error {
	if err := outputTags(w, game, cfg); err != nil {
		return err
	}
	if cfg.TagFormat != config.NoTags {
		// Blank line between tags and moves
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if err := outputMoves(w, game, cfg); err != nil {
		return err
	}
	// Blank line between games
	_, err := fmt.Fprintln(w)
	return err
}
