package document

import (
	"regexp"
	"strings"
)

// headerPattern recognizes a file header line: one to six leading '#'
// characters, optional whitespace, the literal word "File" (case-sensitive),
// a colon, then the path. Matched against the line after trimming.
var headerPattern = regexp.MustCompile(`^#{1,6}\s*File:\s*(.+)$`)

// ParseOptions controls a single Parse call.
type ParseOptions struct {
	// MaxFiles stops the scan once this many files have been closed.
	// Files past the limit are not parsed at all. Zero means no limit.
	MaxFiles int

	// RunValidation attaches Validate diagnostics to the result.
	// When false the result carries empty, valid diagnostics.
	RunValidation bool
}

// ParseResult is the output of Parse.
type ParseResult struct {
	// Files holds the parsed records in source order.
	Files []FileRecord

	// Diagnostics from Validate, when requested.
	Diagnostics ParseDiagnostics

	// TotalChars and TotalLines are computed over the whole input,
	// including any text before the first header.
	TotalChars int
	TotalLines int

	// SkippedLeading counts lines that appeared before the first
	// recognized header and were therefore dropped from Files.
	SkippedLeading int
}

// Parse tokenizes a file-delimited document into ordered file records.
// It never fails: a document with no recognizable headers parses into
// zero files. Lines before the first header are dropped from the file
// list but counted in SkippedLeading.
func Parse(doc string, opts ParseOptions) ParseResult {
	result := ParseResult{
		TotalChars: len(doc),
		TotalLines: lineCount(doc),
		Diagnostics: ParseDiagnostics{
			Format:  FormatUnknown,
			IsValid: true,
		},
	}
	if opts.RunValidation {
		result.Diagnostics = Validate(doc)
	}
	if doc == "" {
		return result
	}

	lines := strings.Split(doc, "\n")

	var (
		open      bool
		current   FileRecord
		bodyLines []string
	)

	closeCurrent := func(endLine int) {
		current.Body = strings.Join(bodyLines, "\n")
		current.EndLine = endLine
		current.HasCodeFences, current.CodeFencesBalanced = fenceFlags(current.Body)
		result.Files = append(result.Files, current)
		open = false
		bodyLines = nil
	}

	for i, line := range lines {
		m := headerPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			if open {
				bodyLines = append(bodyLines, line)
			} else {
				result.SkippedLeading++
			}
			continue
		}

		if open {
			closeCurrent(i)
			if opts.MaxFiles > 0 && len(result.Files) >= opts.MaxFiles {
				return result
			}
		}

		current = FileRecord{
			Path:      strings.TrimSpace(m[1]),
			Header:    line,
			StartLine: i + 1,
		}
		open = true
	}

	if open {
		closeCurrent(len(lines))
	}
	return result
}

func lineCount(doc string) int {
	if doc == "" {
		return 0
	}
	return strings.Count(doc, "\n") + 1
}
