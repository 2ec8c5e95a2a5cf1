// Package truncate reduces a parsed file list to fit a character budget.
// Files matching caller-supplied priority paths get a doubled line
// allowance and always survive; ordinary files are kept whole in order
// until the budget runs out, with at most one file cut part-way. A cut
// never splits a file header from its body and never leaves an
// unterminated code fence when fence preservation is on.
package truncate

import (
	"strings"

	"github.com/rand/questline/internal/document"
)

// DefaultMaxLinesPerFile is the per-file line allowance used when the
// caller does not supply one. Priority files get double this.
const DefaultMaxLinesPerFile = 120

// DefaultMarker is the line appended to a body that was cut mid-way.
const DefaultMarker = "... [truncated]"

const fenceClose = "```"

// Options configures a truncation pass.
type Options struct {
	// MaxChars is the character budget for the serialized output.
	MaxChars int

	// MaxLinesPerFile caps ordinary files; priority files get twice
	// this many lines. Zero or negative uses DefaultMaxLinesPerFile.
	MaxLinesPerFile int

	// PriorityPaths selects files to preserve generously. Matching is
	// substring-based in both directions so callers may pass bare
	// filenames or repo-relative paths interchangeably. Short generic
	// patterns ("index") will match broadly; that is the caller's
	// trade-off to make.
	PriorityPaths []string

	// PreserveCodeFences closes any code fence a cut leaves open.
	PreserveCodeFences bool

	// TruncationMarker is appended as the final body line of any file
	// that was cut. Empty uses DefaultMarker.
	TruncationMarker string
}

// DefaultOptions returns options with the package defaults filled in.
// MaxChars is left zero and must be set by the caller.
func DefaultOptions() Options {
	return Options{
		MaxLinesPerFile:    DefaultMaxLinesPerFile,
		PreserveCodeFences: true,
		TruncationMarker:   DefaultMarker,
	}
}

// Outcome describes how a truncation pass ended.
type Outcome int

const (
	// OutcomeFit means every file was kept unmodified.
	OutcomeFit Outcome = iota
	// OutcomeTruncated means at least one file was cut or dropped.
	OutcomeTruncated
	// OutcomeBudgetExceeded means the priority files alone, under their
	// own allowance, exceeded MaxChars; no ordinary files were kept and
	// the output overflows the budget.
	OutcomeBudgetExceeded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFit:
		return "fit"
	case OutcomeTruncated:
		return "truncated"
	case OutcomeBudgetExceeded:
		return "budget-exceeded"
	default:
		return "unknown"
	}
}

// Result contains the reduced file list and truncation metadata.
type Result struct {
	// Files holds priority files first (in original relative order),
	// then the kept ordinary files (in original relative order).
	// Downstream priority detection depends on this contiguous placement.
	Files []document.FileRecord

	// Outcome classifies the pass.
	Outcome Outcome

	// PriorityKept and RegularKept count the files in each partition
	// of the output.
	PriorityKept int
	RegularKept  int

	// TruncatedFiles counts files whose body was cut.
	TruncatedFiles int

	// DroppedFiles counts ordinary files left out entirely.
	DroppedFiles int

	// OutputChars is the rendered size of the output, including
	// per-file separator overhead.
	OutputChars int
}

// Truncate reduces files to fit opts.MaxChars. Input records are never
// mutated; a cut produces a fresh record. Priority files are moved to
// the front of the output regardless of original position.
func Truncate(files []document.FileRecord, opts Options) Result {
	if opts.MaxLinesPerFile <= 0 {
		opts.MaxLinesPerFile = DefaultMaxLinesPerFile
	}
	if opts.TruncationMarker == "" {
		opts.TruncationMarker = DefaultMarker
	}

	var priority, regular []document.FileRecord
	for _, f := range files {
		if matchesPriority(f.Path, opts.PriorityPaths) {
			priority = append(priority, f)
		} else {
			regular = append(regular, f)
		}
	}

	result := Result{}
	priorityChars := 0
	for _, f := range priority {
		kept, cut := cutToLines(f, 2*opts.MaxLinesPerFile, opts)
		if cut {
			result.TruncatedFiles++
		}
		priorityChars += kept.Chars()
		result.Files = append(result.Files, kept)
	}
	result.PriorityKept = len(priority)

	remaining := opts.MaxChars - priorityChars

	currentChars := 0
	for i, f := range regular {
		if f.Chars() <= remaining-currentChars {
			result.Files = append(result.Files, f)
			result.RegularKept++
			currentChars += f.Chars()
			continue
		}
		if remaining-currentChars > 0 {
			partial := cutToBudget(f, remaining-currentChars, opts)
			result.Files = append(result.Files, partial)
			result.RegularKept++
			result.TruncatedFiles++
			currentChars += partial.Chars()
			result.DroppedFiles = len(regular) - i - 1
		} else {
			result.DroppedFiles = len(regular) - i
		}
		break
	}

	result.OutputChars = priorityChars + currentChars
	result.Outcome = classify(result, priorityChars, opts)
	return result
}

func classify(r Result, priorityChars int, opts Options) Outcome {
	if priorityChars > opts.MaxChars {
		return OutcomeBudgetExceeded
	}
	if r.TruncatedFiles > 0 || r.DroppedFiles > 0 {
		return OutcomeTruncated
	}
	return OutcomeFit
}

// matchesPriority applies the bidirectional substring rule: a pattern
// matches a path when either string contains the other.
func matchesPriority(path string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(path, p) || strings.Contains(p, path) {
			return true
		}
	}
	return false
}

// cutToLines keeps at most maxLines of f's body. The returned record is
// f itself when no cut was needed.
func cutToLines(f document.FileRecord, maxLines int, opts Options) (document.FileRecord, bool) {
	lines := strings.Split(f.Body, "\n")
	if len(lines) <= maxLines {
		return f, false
	}
	return rebuild(f, strings.Join(lines[:maxLines], "\n"), opts), true
}

// cutToBudget cuts f to fit within budget rendered characters: the line
// cut first, then a direct substring cut, which is the stricter of the
// two. The fixed costs (header, marker, separator, fence closure) are
// reserved out of the budget before the substring cut so the rendered
// record stays within it; when the budget cannot even cover those fixed
// costs the body is cut to nothing and the record overflows by the
// fixed costs alone.
func cutToBudget(f document.FileRecord, budget int, opts Options) document.FileRecord {
	lines := strings.Split(f.Body, "\n")
	maxLines := opts.MaxLinesPerFile
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	body := strings.Join(lines, "\n")

	fixed := f.Chars() - len(f.Body) + len(opts.TruncationMarker) + 1
	if opts.PreserveCodeFences {
		fixed += len(fenceClose) + 1
	}
	bodyBudget := budget - fixed
	if bodyBudget < 0 {
		bodyBudget = 0
	}
	if len(body) > bodyBudget {
		body = body[:bodyBudget]
	}
	return rebuild(f, body, opts)
}

// rebuild assembles the truncated record: fence closure (when enabled
// and the cut text ends inside an open fence), then the marker as the
// final body line.
func rebuild(f document.FileRecord, body string, opts Options) document.FileRecord {
	if opts.PreserveCodeFences && fenceOpen(body) {
		if body == "" || strings.HasSuffix(body, "\n") {
			body += fenceClose
		} else {
			body += "\n" + fenceClose
		}
	}
	if body == "" {
		body = opts.TruncationMarker
	} else {
		body = strings.TrimRight(body, "\n") + "\n" + opts.TruncationMarker
	}

	out := f
	out.Body = body
	out.EndLine = f.StartLine + strings.Count(body, "\n") + 1
	out.HasCodeFences = fenceCount(body) > 0
	out.CodeFencesBalanced = !fenceOpen(body)
	return out
}

// fenceCount counts lines in text beginning with a fence marker.
func fenceCount(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, fenceClose) {
			n++
		}
	}
	return n
}

// fenceOpen reports whether text ends inside an open code fence,
// judged by marker-line count parity.
func fenceOpen(text string) bool {
	return fenceCount(text)%2 != 0
}
