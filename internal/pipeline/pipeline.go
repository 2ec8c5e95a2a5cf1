// Package pipeline wires the content components together: validation
// and parsing on the way into the model, truncation when the document
// overflows its budget, and narrative extraction on the way back.
// The actual model call sits between Prepare and Extract and belongs
// to the caller.
package pipeline

import (
	"log/slog"

	"github.com/rand/questline/internal/config"
	"github.com/rand/questline/internal/document"
	"github.com/rand/questline/internal/narrative"
	"github.com/rand/questline/internal/tokens"
	"github.com/rand/questline/internal/truncate"
)

// Pipeline runs the prepare/extract flow for one set of limits.
// It holds no state between calls and is safe for concurrent use.
type Pipeline struct {
	limits    config.Limits
	estimator tokens.Estimator
	logger    *slog.Logger
}

// New creates a pipeline. A nil logger falls back to slog.Default().
func New(limits config.Limits, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		limits:    limits,
		estimator: tokens.CharRatio{CharsPerToken: limits.CharsPerToken},
		logger:    logger,
	}
}

// PrepareReport describes what Prepare did to the document.
type PrepareReport struct {
	// Diagnostics holds the format warnings for the input.
	Diagnostics document.ParseDiagnostics

	// FileCount is the number of files parsed from the input.
	FileCount int

	// InputChars and OutputChars are the document sizes before and
	// after preparation.
	InputChars  int
	OutputChars int

	// EstimatedTokens is the token estimate for the output document.
	EstimatedTokens int

	// Truncated reports whether the document was reduced at all.
	Truncated bool

	// Truncation classifies the truncation pass; OutcomeFit when no
	// truncation was needed.
	Truncation truncate.Outcome
}

// Prepare bounds a document to the configured budget. Documents already
// within the budget pass through byte-identical; oversized documents
// are parsed, truncated with the given priority paths, and re-serialized.
func (p *Pipeline) Prepare(doc string, priorityPaths []string) (string, PrepareReport) {
	report := PrepareReport{
		Diagnostics: document.Validate(doc),
		InputChars:  len(doc),
	}
	for _, w := range report.Diagnostics.Warnings {
		p.logger.Warn("document format warning",
			"format", report.Diagnostics.Format.String(),
			"warning", w)
	}

	parsed := document.Parse(doc, document.ParseOptions{})
	report.FileCount = len(parsed.Files)

	if len(doc) <= p.limits.MaxChars {
		report.OutputChars = len(doc)
		report.EstimatedTokens = p.estimator.Estimate(doc)
		return doc, report
	}

	result := truncate.Truncate(parsed.Files, truncate.Options{
		MaxChars:           p.limits.MaxChars,
		MaxLinesPerFile:    p.limits.MaxLinesPerFile,
		PriorityPaths:      priorityPaths,
		PreserveCodeFences: true,
		TruncationMarker:   p.limits.TruncationMarker,
	})
	out := document.Serialize(result.Files)

	report.Truncated = true
	report.Truncation = result.Outcome
	report.OutputChars = len(out)
	report.EstimatedTokens = p.estimator.Estimate(out)

	p.logger.Info("document truncated",
		"outcome", result.Outcome.String(),
		"input_chars", report.InputChars,
		"output_chars", report.OutputChars,
		"files_kept", len(result.Files),
		"files_dropped", result.DroppedFiles)
	if result.Outcome == truncate.OutcomeBudgetExceeded {
		p.logger.Warn("priority files alone exceed the character budget",
			"budget", p.limits.MaxChars,
			"output_chars", report.OutputChars)
	}

	return out, report
}

// Extract recovers a structured narrative from the model's reply,
// logging degraded outcomes.
func (p *Pipeline) Extract(reply string) (narrative.Narrative, narrative.Outcome) {
	n, outcome := narrative.ParseReply(reply)
	if outcome != narrative.OutcomeComplete {
		p.logger.Warn("narrative extraction degraded",
			"outcome", outcome.String(),
			"reply_chars", len(reply))
	}
	return n, outcome
}
