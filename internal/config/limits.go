// Package config holds the caller-supplied limits the parsing and
// truncation pipeline consumes. The pipeline owns no persistent
// configuration; these values are passed per invocation.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Limits defines the content budget constraints.
type Limits struct {
	// MaxChars is the character budget for the document sent to the
	// model.
	MaxChars int `json:"max_chars" yaml:"max_chars"`

	// MaxLinesPerFile caps ordinary files during truncation; priority
	// files get double.
	MaxLinesPerFile int `json:"max_lines_per_file" yaml:"max_lines_per_file"`

	// CharsPerToken is the ratio used to estimate token counts.
	CharsPerToken int `json:"chars_per_token" yaml:"chars_per_token"`

	// TruncationMarker is appended to any file body that was cut.
	TruncationMarker string `json:"truncation_marker" yaml:"truncation_marker"`
}

// DefaultLimits returns sensible default limits.
func DefaultLimits() Limits {
	return Limits{
		MaxChars:         100000,
		MaxLinesPerFile:  120,
		CharsPerToken:    4,
		TruncationMarker: "... [truncated]",
	}
}

// Load parses yaml-encoded limits, filling unset fields from defaults.
func Load(data []byte) (Limits, error) {
	l := DefaultLimits()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Limits{}, fmt.Errorf("parse limits: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Limits{}, err
	}
	return l, nil
}

// FromEnv overlays QUESTLINE_* environment variables onto l.
// Unset or malformed values leave the field unchanged.
func (l Limits) FromEnv() Limits {
	if v, ok := envInt("QUESTLINE_MAX_CHARS"); ok {
		l.MaxChars = v
	}
	if v, ok := envInt("QUESTLINE_MAX_LINES_PER_FILE"); ok {
		l.MaxLinesPerFile = v
	}
	if v, ok := envInt("QUESTLINE_CHARS_PER_TOKEN"); ok {
		l.CharsPerToken = v
	}
	if v := os.Getenv("QUESTLINE_TRUNCATION_MARKER"); v != "" {
		l.TruncationMarker = v
	}
	return l
}

// Validate checks that the limits are usable.
func (l Limits) Validate() error {
	if l.MaxChars <= 0 {
		return fmt.Errorf("max_chars must be positive, got %d", l.MaxChars)
	}
	if l.MaxLinesPerFile <= 0 {
		return fmt.Errorf("max_lines_per_file must be positive, got %d", l.MaxLinesPerFile)
	}
	if l.CharsPerToken <= 0 {
		return fmt.Errorf("chars_per_token must be positive, got %d", l.CharsPerToken)
	}
	return nil
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
