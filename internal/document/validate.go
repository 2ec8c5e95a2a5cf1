package document

import (
	"fmt"
	"regexp"
)

// Format identifies which header convention a document appears to use.
type Format int

const (
	// FormatUnknown means no recognized header convention was found.
	FormatUnknown Format = iota
	// FormatFileDelimited is the canonical "# File:" convention.
	FormatFileDelimited
	// FormatLowercaseFile is the deprecated lower-case "# file:" spelling.
	FormatLowercaseFile
	// FormatSourceDelimited is the alternate "# Source:" keyword.
	FormatSourceDelimited
	// FormatPathDelimited is the alternate "# Path:" keyword.
	FormatPathDelimited
)

func (f Format) String() string {
	switch f {
	case FormatFileDelimited:
		return "file-delimited"
	case FormatLowercaseFile:
		return "file-delimited-lowercase"
	case FormatSourceDelimited:
		return "source-delimited"
	case FormatPathDelimited:
		return "path-delimited"
	default:
		return "unknown"
	}
}

// ParseDiagnostics reports non-fatal format findings for a document.
type ParseDiagnostics struct {
	Format   Format
	IsValid  bool
	Warnings []string
}

// minValidatableLen is the size below which a document is too small to
// judge; Validate reports such input as valid with no warnings.
const minValidatableLen = 32

var (
	canonicalHeader = regexp.MustCompile(`(?m)^\s*#{1,6}\s*File:`)
	lowercaseHeader = regexp.MustCompile(`(?m)^\s*#{1,6}\s*file:`)
	sourceHeader    = regexp.MustCompile(`(?m)^\s*#{1,6}\s*Source:`)
	pathHeader      = regexp.MustCompile(`(?m)^\s*#{1,6}\s*Path:`)
)

// Validate inspects raw text for known-bad header spellings, missing
// headers, and unbalanced code fences. It is pure and total: every check
// runs regardless of earlier findings, and nothing here is fatal —
// callers decide what to do with the warnings.
func Validate(doc string) ParseDiagnostics {
	d := ParseDiagnostics{Format: FormatUnknown, IsValid: true}
	if len(doc) < minValidatableLen {
		return d
	}

	hasCanonical := canonicalHeader.MatchString(doc)
	hasLowercase := lowercaseHeader.MatchString(doc)
	hasSource := sourceHeader.MatchString(doc)
	hasPath := pathHeader.MatchString(doc)

	if hasLowercase {
		d.Warnings = append(d.Warnings, `deprecated lower-case "file:" header spelling; use "File:"`)
	}
	if hasSource {
		d.Warnings = append(d.Warnings, `alternate "Source:" header keyword; use "File:"`)
	}
	if hasPath {
		d.Warnings = append(d.Warnings, `alternate "Path:" header keyword; use "File:"`)
	}
	if !hasCanonical && !hasLowercase && !hasSource && !hasPath {
		d.Warnings = append(d.Warnings, "no recognized file headers found")
	}

	if n := countFences(doc); n%2 != 0 {
		d.Warnings = append(d.Warnings, fmt.Sprintf("unbalanced code fences: %d fence markers", n))
	}

	switch {
	case hasCanonical:
		d.Format = FormatFileDelimited
	case hasLowercase:
		d.Format = FormatLowercaseFile
	case hasSource:
		d.Format = FormatSourceDelimited
	case hasPath:
		d.Format = FormatPathDelimited
	}

	d.IsValid = len(d.Warnings) == 0
	return d
}
