package questline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxChars = 600
	p := New(limits, nil)

	var b strings.Builder
	for _, name := range []string{"main.go", "parser.go", "server.go"} {
		b.WriteString("## File: src/" + name + "\n")
		b.WriteString(strings.Repeat("line of source content\n", 20))
		b.WriteString("\n")
	}

	doc, report := p.Prepare(b.String(), []string{"main.go"})
	assert.True(t, report.Truncated)
	assert.True(t, strings.HasPrefix(doc, "## File: src/main.go"))
	assert.Equal(t, 3, report.FileCount)

	reply := "# The Keep of Three Halls\n" +
		"## Story\nA fortress of source code looms.\n" +
		"## Quests\n" +
		"### The Front Gate\nBegin at the entry point.\n\n- `src/main.go`\n"

	n, outcome := p.Extract(reply)
	assert.Equal(t, NarrativeComplete, outcome)
	assert.Equal(t, "The Keep of Three Halls", n.Title)
	require.Len(t, n.Quests, 1)
	assert.Equal(t, "quest-1", n.Quests[0].ID)
	assert.Equal(t, []string{"src/main.go"}, n.Quests[0].CodeFiles)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}
