package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDelimited(t *testing.T) {
	reply := "noise before\n" + BeginMarker + "\n# Content\n" + EndMarker + "\nnoise after\n"
	assert.Equal(t, "# Content", ExtractDelimited(reply))
}

func TestExtractDelimited_MissingMarkers(t *testing.T) {
	assert.Equal(t, "# Content\n", ExtractDelimited("# Content\n"))
}

func TestExtractDelimited_OnlyBegin(t *testing.T) {
	reply := BeginMarker + "\n# Content\n"
	assert.Equal(t, reply, ExtractDelimited(reply))
}

func TestExtractDelimited_OutOfOrder(t *testing.T) {
	reply := EndMarker + "\n# Content\n" + BeginMarker + "\n"
	assert.Equal(t, reply, ExtractDelimited(reply))
}

func TestUnwrapFence(t *testing.T) {
	assert.Equal(t, "# Title\ntext", UnwrapFence("```markdown\n# Title\ntext\n```"))
	assert.Equal(t, "# Title", UnwrapFence("```\n# Title\n```\n"))
}

func TestUnwrapFence_LeavesPartialAlone(t *testing.T) {
	in := "```\nunterminated"
	assert.Equal(t, in, UnwrapFence(in))

	in = "no fence here\n"
	assert.Equal(t, in, UnwrapFence(in))
}

func TestUnwrapFence_InteriorFenceNotStripped(t *testing.T) {
	in := "# Title\n```go\ncode\n```\n"
	assert.Equal(t, in, UnwrapFence(in))
}

func TestStripPreamble(t *testing.T) {
	in := "Here is the continuation of your adventure:\n\n# Title\nbody\n"
	assert.Equal(t, "# Title\nbody\n", StripPreamble(in))
}

func TestStripPreamble_MultipleOpeners(t *testing.T) {
	in := "Certainly!\nHere's the story you asked for:\n\n# Title\n"
	assert.Equal(t, "# Title\n", StripPreamble(in))
}

func TestStripPreamble_CapsAtThreeLines(t *testing.T) {
	in := "Certainly!\nCertainly!\nCertainly!\nCertainly!\n# Title\n"
	assert.Equal(t, "Certainly!\n# Title\n", StripPreamble(in))
}

func TestStripPreamble_ContentUntouched(t *testing.T) {
	in := "# Title\nHere is the map of the realm.\n"
	assert.Equal(t, in, StripPreamble(in))
}

func TestPreprocess_Chain(t *testing.T) {
	reply := "Here is the markdown you requested:\n\n" +
		BeginMarker + "\n```markdown\n# Title\ntext\n```\n" + EndMarker + "\n"
	assert.Equal(t, "# Title\ntext", Preprocess(reply))
}
