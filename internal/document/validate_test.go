package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ShortInputIsValid(t *testing.T) {
	d := Validate("tiny")
	assert.True(t, d.IsValid)
	assert.Empty(t, d.Warnings)
	assert.Equal(t, FormatUnknown, d.Format)
}

func TestValidate_CanonicalFormat(t *testing.T) {
	doc := "## File: src/main.go\npackage main\n\nfunc main() {}\n"

	d := Validate(doc)
	assert.True(t, d.IsValid)
	assert.Empty(t, d.Warnings)
	assert.Equal(t, FormatFileDelimited, d.Format)
}

func TestValidate_LowercaseHeaderWarns(t *testing.T) {
	doc := "## file: src/main.go\npackage main\nmore content here\n"

	d := Validate(doc)
	assert.False(t, d.IsValid)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0], "lower-case")
	assert.Equal(t, FormatLowercaseFile, d.Format)
}

func TestValidate_SourceAndPathKeywordsWarn(t *testing.T) {
	d := Validate("## Source: a.go\ncontent content content\n")
	assert.False(t, d.IsValid)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0], "Source:")
	assert.Equal(t, FormatSourceDelimited, d.Format)

	d = Validate("## Path: a.go\ncontent content content here\n")
	assert.False(t, d.IsValid)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0], "Path:")
	assert.Equal(t, FormatPathDelimited, d.Format)
}

func TestValidate_NoHeaders(t *testing.T) {
	d := Validate("a longer stretch of text without any file headers in it\n")
	assert.False(t, d.IsValid)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0], "no recognized file headers")
	assert.Equal(t, FormatUnknown, d.Format)
}

func TestValidate_WarningsDoNotShortCircuit(t *testing.T) {
	// Lowercase spelling, alternate keyword, and an odd fence count:
	// all three must be reported.
	doc := "## file: a.go\n## Source: b.go\n```\nunterminated fence block\n"

	d := Validate(doc)
	assert.False(t, d.IsValid)
	require.Len(t, d.Warnings, 3)
	assert.Contains(t, d.Warnings[0], "lower-case")
	assert.Contains(t, d.Warnings[1], "Source:")
	assert.Contains(t, d.Warnings[2], "unbalanced code fences")
}

func TestValidate_OddFenceCountNamed(t *testing.T) {
	doc := "## File: a.md\n```\ncode\n```\n```\nmore padding text\n"

	d := Validate(doc)
	assert.False(t, d.IsValid)
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0], "3 fence markers")
}

func TestValidate_FormatPriorityOrder(t *testing.T) {
	// Canonical wins over any deprecated variant also present.
	doc := "## File: a.go\n## file: b.go\n## Path: c.go\nfiller text\n"

	d := Validate(doc)
	assert.Equal(t, FormatFileDelimited, d.Format)
	// Variants still warn even though the format resolved to canonical.
	assert.False(t, d.IsValid)
}

func TestValidate_BalancedFencesQuiet(t *testing.T) {
	doc := "## File: a.md\n" + strings.Repeat("```\ncode\n```\n", 3)
	d := Validate(doc)
	assert.True(t, d.IsValid)
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "file-delimited", FormatFileDelimited.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
	assert.Equal(t, "unknown", Format(99).String())
}
