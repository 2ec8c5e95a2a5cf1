// Package document parses, validates, and serializes file-delimited
// documents: concatenations of source files where each file is introduced
// by a markdown-style "# File: path" header line. The format is produced
// by an external repository-summarization step and is consumed here with
// deliberate tolerance — deviations are reported as warnings, never errors.
package document

import "strings"

// Separator is the literal line emitted between serialized files.
const Separator = "---"

// fencePrefix marks a code-fence delimiter line.
const fencePrefix = "```"

// FileRecord is one file extracted from a delimited document.
// Records are immutable after parsing; truncation produces new records
// rather than mutating these in place.
type FileRecord struct {
	// Path is the header's declared path, unvalidated against any
	// real filesystem.
	Path string

	// Header is the exact header line, preserved verbatim so
	// re-serialization is lossless.
	Header string

	// Body is everything between this header and the next one
	// (or end of document).
	Body string

	// StartLine and EndLine are the 1-based source line span,
	// for diagnostics.
	StartLine int
	EndLine   int

	// HasCodeFences reports whether Body contains any fence marker lines.
	HasCodeFences bool

	// CodeFencesBalanced reports whether Body's fence marker count is even.
	CodeFencesBalanced bool
}

// Chars returns the rendered size of the record: header plus body plus
// the fixed per-file separator overhead added by Serialize.
func (f FileRecord) Chars() int {
	return len(f.Header) + 1 + len(f.Body) + serializeOverhead
}

// countFences counts lines in body that begin with a fence marker.
func countFences(body string) int {
	n := 0
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, fencePrefix) {
			n++
		}
	}
	return n
}

// fenceFlags derives the two fence fields for a body.
func fenceFlags(body string) (has, balanced bool) {
	n := countFences(body)
	return n > 0, n%2 == 0
}
