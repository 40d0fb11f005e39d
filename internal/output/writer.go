package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/pgn-report-go/internal/chess"
	"github.com/lgbarn/pgn-report-go/internal/config"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (report, PGN, JSON).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(game *chess.Game) error

	// WriteError writes the failure to parse the input called name,
	// in place of the game it would have produced.
	WriteError(name string, err error) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewWriter returns the writer for cfg.Output.Format.
func NewWriter(w io.Writer, cfg *config.Config) (GameWriter, error) {
	switch cfg.Output.Format {
	case config.Report:
		return NewReportWriter(w, cfg), nil
	case config.JSON:
		return NewJSONWriter(w, cfg), nil
	case config.PGN:
		return NewPGNWriter(w, cfg), nil
	case config.JSONLines:
		return NewJSONWriterSingle(w, cfg), nil
	}
	return nil, fmt.Errorf("no writer for output format %v", cfg.Output.Format)
}

// ReportWriter writes games as human-readable reports separated by blank lines.
type ReportWriter struct {
	w       io.Writer
	cfg     *config.Config
	written int
}

// NewReportWriter creates a new report writer.
func NewReportWriter(w io.Writer, cfg *config.Config) *ReportWriter {
	return &ReportWriter{w: w, cfg: cfg}
}

func (rw *ReportWriter) separate() error {
	rw.written++
	if rw.written == 1 {
		return nil
	}
	_, err := fmt.Fprintln(rw.w)
	return err
}

// WriteGame writes a game report.
func (rw *ReportWriter) WriteGame(game *chess.Game) error {
	if err := rw.separate(); err != nil {
		return err
	}
	return OutputReport(rw.w, game, &rw.cfg.Output)
}

// WriteError writes the error text where the report would have been.
func (rw *ReportWriter) WriteError(name string, err error) error {
	if serr := rw.separate(); serr != nil {
		return serr
	}
	return OutputError(rw.w, name, err)
}

// Flush flushes the report writer (no-op as it writes immediately).
func (rw *ReportWriter) Flush() error {
	return nil
}

// Close closes the report writer.
func (rw *ReportWriter) Close() error {
	return nil
}

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, cfg *config.Config) *PGNWriter {
	return &PGNWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(game *chess.Game) error {
	return OutputGame(pw.w, game, &pw.cfg.Output)
}

// WriteError writes the failure as a brace comment between games.
func (pw *PGNWriter) WriteError(name string, err error) error {
	if name == "" {
		name = "-"
	}
	_, werr := fmt.Fprintf(pw.w, "{ %s: %s }\n\n", name, sanitizeComment(err.Error()))
	return werr
}

// sanitizeComment keeps text from closing a brace comment early.
func sanitizeComment(s string) string {
	return strings.ReplaceAll(s, "}", ")")
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	games  []*chess.Game
	errs   []JSONError
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		games:  make([]*chess.Game, 0),
		single: false,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately,
// one compact object per line.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

func (jw *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(jw.w)
	if !jw.single {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(game *chess.Game) error {
	if jw.single {
		return jw.encode(GameToJSON(game, &jw.cfg.Output))
	}

	// Buffer for batch output
	jw.games = append(jw.games, game)
	return nil
}

// WriteError records a failed input (or writes it immediately in single mode).
func (jw *JSONWriter) WriteError(name string, err error) error {
	je := JSONError{Name: name, Error: err.Error()}
	if jw.single {
		return jw.encode(je)
	}
	jw.errs = append(jw.errs, je)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || (len(jw.games) == 0 && len(jw.errs) == 0) {
		return nil
	}

	output := &JSONOutput{
		Games:  make([]*JSONGame, 0, len(jw.games)),
		Errors: jw.errs,
	}

	for _, game := range jw.games {
		output.Games = append(output.Games, GameToJSON(game, &jw.cfg.Output))
	}

	err := jw.encode(output)

	// Clear buffer after writing
	jw.games = jw.games[:0]
	jw.errs = nil

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
