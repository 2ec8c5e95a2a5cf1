// Package questline turns an oversized codebase summary into a
// model-ready document and turns the model's markdown reply back into a
// structured narrative.
//
// The input is a file-delimited document: source files concatenated
// under "# File: path" headers. Prepare validates it, parses it, and —
// when it overflows the character budget — truncates it without ever
// splitting a header from its body or leaving a code fence open, then
// re-serializes it. Extract tolerantly recovers a title, story, and
// ordered quest list from the reply, whatever heading or list
// convention the model chose.
//
// The model call itself is the caller's: Prepare produces the document
// to send, Extract consumes the reply.
package questline

import (
	"log/slog"

	"github.com/rand/questline/internal/config"
	"github.com/rand/questline/internal/document"
	"github.com/rand/questline/internal/narrative"
	"github.com/rand/questline/internal/pipeline"
	"github.com/rand/questline/internal/tokens"
	"github.com/rand/questline/internal/truncate"
)

// Re-exported pipeline types. The implementation lives in internal
// packages; these aliases are the public surface.
type (
	// Limits is the per-invocation configuration surface.
	Limits = config.Limits

	// Pipeline runs the prepare/extract flow.
	Pipeline = pipeline.Pipeline

	// PrepareReport describes what Prepare did to a document.
	PrepareReport = pipeline.PrepareReport

	// ParseDiagnostics holds non-fatal format warnings.
	ParseDiagnostics = document.ParseDiagnostics

	// FileRecord is one parsed file from a delimited document.
	FileRecord = document.FileRecord

	// Narrative is the structured result extracted from a reply.
	Narrative = narrative.Narrative

	// Quest is one narrative chapter.
	Quest = narrative.Quest

	// NarrativeOutcome classifies what a reply yielded.
	NarrativeOutcome = narrative.Outcome

	// TruncateOutcome classifies a truncation pass.
	TruncateOutcome = truncate.Outcome
)

// Narrative outcome values.
const (
	NarrativeComplete = narrative.OutcomeComplete
	NarrativeNoQuests = narrative.OutcomeNoQuests
	NarrativeEmpty    = narrative.OutcomeEmpty
)

// Truncation outcome values.
const (
	TruncateFit            = truncate.OutcomeFit
	TruncateTruncated      = truncate.OutcomeTruncated
	TruncateBudgetExceeded = truncate.OutcomeBudgetExceeded
)

// New creates a pipeline for the given limits. A nil logger falls back
// to slog.Default().
func New(limits Limits, logger *slog.Logger) *Pipeline {
	return pipeline.New(limits, logger)
}

// DefaultLimits returns the default budget configuration.
func DefaultLimits() Limits {
	return config.DefaultLimits()
}

// LoadLimits parses yaml-encoded limits over the defaults.
func LoadLimits(data []byte) (Limits, error) {
	return config.Load(data)
}

// EstimateTokens estimates the token count of text using the default
// characters-per-token ratio.
func EstimateTokens(text string) int {
	return tokens.Estimate(text)
}
