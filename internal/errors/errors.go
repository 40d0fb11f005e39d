// Package errors provides sentinel errors and error types for pgn-report.
// It separates the three ways turning input into a game can fail (reading,
// grammar matching and tree extraction) so callers can tell them apart with
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrRead indicates the input could not be read.
	ErrRead = errors.New("read failure")

	// ErrSyntax indicates input that does not conform to the PGN grammar.
	ErrSyntax = errors.New("syntax error")

	// ErrExtraction indicates a parse tree that lacks an expected node.
	// A successful parse should never produce one, so this is always a bug.
	ErrExtraction = errors.New("extraction failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SyntaxError reports where and why the grammar rejected its input.
type SyntaxError struct {
	Offset   int    // Byte offset of the failure (0-based)
	Line     int    // Line number (1-based)
	Column   int    // Column number in bytes (1-based)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *SyntaxError) Error() string {
	var parts []string

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("%d:%d", e.Line, e.Column))
	}

	switch {
	case e.Expected != "" && e.Got != "":
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	case e.Expected != "":
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	case e.Got != "":
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if len(parts) == 0 {
		return ErrSyntax.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSyntax, strings.Join(parts, ": "))
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// ExtractionError names the parse tree element that was missing or out of place.
type ExtractionError struct {
	Element    string // e.g. "move list", "game result"
	Unexpected bool   // the element was present where it is not allowed
}

// Error returns a fixed message for the element.
func (e *ExtractionError) Error() string {
	if e.Unexpected {
		return fmt.Sprintf("%s: unexpected %s in move pair", ErrExtraction, e.Element)
	}
	return fmt.Sprintf("%s: %s not found", ErrExtraction, e.Element)
}

// Unwrap returns ErrExtraction.
func (e *ExtractionError) Unwrap() error {
	return ErrExtraction
}

// ReadError wraps an I/O failure with the name of the input.
type ReadError struct {
	Name string // File name, or "-" for standard input
	Err  error  // The underlying error
}

// Error returns the input name and the underlying error.
func (e *ReadError) Error() string {
	name := e.Name
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%s: reading %s: %v", ErrRead, name, e.Err)
}

// Unwrap returns both ErrRead and the underlying error so either can be
// matched with errors.Is().
func (e *ReadError) Unwrap() []error {
	return []error{ErrRead, e.Err}
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
