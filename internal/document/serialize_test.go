package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_SingleFile(t *testing.T) {
	files := []FileRecord{{
		Header: "## File: a.go",
		Path:   "a.go",
		Body:   "package a\n",
	}}

	out := Serialize(files)
	assert.Equal(t, "## File: a.go\npackage a\n\n---", out)
}

func TestSerialize_JoinsWithBlankLine(t *testing.T) {
	files := []FileRecord{
		{Header: "## File: a.go", Body: "aaa"},
		{Header: "## File: b.go", Body: "bbb"},
	}

	out := Serialize(files)
	assert.Equal(t, "## File: a.go\naaa\n\n---\n\n## File: b.go\nbbb\n\n---", out)
}

func TestSerialize_TrimsTrailingWhitespace(t *testing.T) {
	files := []FileRecord{{Header: "## File: a.go", Body: "body   \n\n\t\n"}}

	out := Serialize(files)
	assert.Equal(t, "## File: a.go\nbody\n\n---", out)
}

func TestSerialize_Empty(t *testing.T) {
	assert.Equal(t, "", Serialize(nil))
}

func TestSerialize_RoundTrip(t *testing.T) {
	doc := "## File: src/a.go\npackage a\n\nfunc A() {}\n\n## File: src/b.go\npackage b\n"

	first := Parse(doc, ParseOptions{RunValidation: true})
	require.True(t, first.Diagnostics.IsValid)
	require.Len(t, first.Files, 2)

	reparsed := Parse(Serialize(first.Files), ParseOptions{})
	require.Len(t, reparsed.Files, 2)

	for i := range first.Files {
		assert.Equal(t, first.Files[i].Header, reparsed.Files[i].Header)
		assert.Equal(t, first.Files[i].Path, reparsed.Files[i].Path)

		// Serialization appends the separator block; strip it before
		// comparing the (whitespace-normalized) body content.
		body := strings.TrimSuffix(strings.TrimRight(reparsed.Files[i].Body, " \t\r\n"), "\n\n"+Separator)
		assert.Equal(t, strings.TrimRight(first.Files[i].Body, " \t\r\n"), body)
	}
}

func TestFileRecord_CharsBoundsSerializedSize(t *testing.T) {
	files := []FileRecord{
		{Header: "## File: a.go", Body: "aaa\n"},
		{Header: "## File: b.go", Body: "bbbbb"},
	}

	total := 0
	for _, f := range files {
		total += f.Chars()
	}
	assert.LessOrEqual(t, len(Serialize(files)), total)
}
