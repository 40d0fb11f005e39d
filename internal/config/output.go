package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-report-go/internal/errors"
)

// OutputFormat selects how parsed games are rendered.
type OutputFormat int

const (
	Report OutputFormat = iota // Human-readable game report
	JSON                       // JSON document
	PGN                        // Normalized PGN
	JSONLines                  // One JSON object per line, written as each input finishes
)

var formatNames = []string{"report", "json", "pgn", "jsonl"}

func (f OutputFormat) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat converts a format name to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return OutputFormat(i), nil
		}
	}
	return Report, fmt.Errorf("%w: unknown output format %q (want %s)",
		errors.ErrInvalidConfig, s, strings.Join(formatNames, ", "))
}

// TagOutputForm specifies which tags to output.
type TagOutputForm int

const (
	AllTags        TagOutputForm = 0
	SevenTagRoster TagOutputForm = 1
	NoTags         TagOutputForm = 2
)

var tagFormNames = []string{"all", "seven", "none"}

func (f TagOutputForm) String() string {
	if f < 0 || int(f) >= len(tagFormNames) {
		return "unknown"
	}
	return tagFormNames[f]
}

// ParseTagForm converts a tag selection name to a TagOutputForm.
func ParseTagForm(s string) (TagOutputForm, error) {
	for i, name := range tagFormNames {
		if strings.EqualFold(s, name) {
			return TagOutputForm(i), nil
		}
	}
	return AllTags, fmt.Errorf("%w: unknown tag selection %q (want %s)",
		errors.ErrInvalidConfig, s, strings.Join(tagFormNames, ", "))
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format selects the writer.
	Format OutputFormat

	// MaxLineLength is the wrap width for move text.
	MaxLineLength uint

	// KeepComments controls whether comments are kept in output
	KeepComments bool

	// StripClockAnnotations removes clock/time annotations from comments
	StripClockAnnotations bool

	// TagFormat specifies which tags to output (AllTags, SevenTagRoster, NoTags)
	TagFormat TagOutputForm
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:        Report,
		MaxLineLength: DefaultMaxLineLength,
		KeepComments:  true,
		TagFormat:     AllTags,
	}
}

// MinLineLength is the narrowest wrap width accepted.
const MinLineLength = 20

// Validate checks that the output settings are usable.
func (c *OutputConfig) Validate() error {
	if c.Format < Report || c.Format > PGN {
		return fmt.Errorf("%w: output format %d", errors.ErrInvalidConfig, c.Format)
	}
	if c.TagFormat < AllTags || c.TagFormat > NoTags {
		return fmt.Errorf("%w: tag selection %d", errors.ErrInvalidConfig, c.TagFormat)
	}
	if c.MaxLineLength < MinLineLength {
		return fmt.Errorf("%w: line length %d is below %d",
			errors.ErrInvalidConfig, c.MaxLineLength, MinLineLength)
	}
	return nil
}
