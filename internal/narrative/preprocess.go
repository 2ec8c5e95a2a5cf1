package narrative

import "strings"

// BeginMarker and EndMarker are the literal delimiter lines the prompt
// asks the model to wrap its answer in.
const (
	BeginMarker = "---BEGIN MARKDOWN---"
	EndMarker   = "---END MARKDOWN---"
)

// maxPreambleLines bounds how many leading meta-commentary lines
// StripPreamble will drop.
const maxPreambleLines = 3

// preambleOpeners are known throwaway openers models prefix replies
// with despite instructions. Matched case-insensitively as prefixes.
var preambleOpeners = []string{
	"here is the continuation",
	"here is the",
	"here's the",
	"sure, here",
	"certainly",
	"below is",
	"i've created",
	"i have created",
}

// ExtractDelimited returns the text between BeginMarker and EndMarker.
// When the markers are missing or out of order the whole reply is
// returned unchanged.
func ExtractDelimited(reply string) string {
	begin := strings.Index(reply, BeginMarker)
	if begin < 0 {
		return reply
	}
	rest := reply[begin+len(BeginMarker):]
	end := strings.Index(rest, EndMarker)
	if end < 0 {
		return reply
	}
	return strings.TrimSpace(rest[:end])
}

// UnwrapFence strips a markdown code-fence wrapper when the entire
// reply is enclosed in one. Partial fences are left alone.
func UnwrapFence(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return reply
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return reply
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

// StripPreamble drops up to maxPreambleLines leading lines that match a
// known meta-commentary opener, along with blank lines between them.
// The first line that matches nothing stops the scan.
func StripPreamble(reply string) string {
	lines := strings.Split(reply, "\n")
	dropped := 0
	i := 0
	for i < len(lines) && dropped < maxPreambleLines {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}
		if !isPreamble(line) {
			break
		}
		i++
		dropped++
	}
	if dropped == 0 {
		return reply
	}
	return strings.Join(lines[i:], "\n")
}

func isPreamble(line string) bool {
	lower := strings.ToLower(line)
	for _, opener := range preambleOpeners {
		if strings.HasPrefix(lower, opener) {
			return true
		}
	}
	return false
}

// Preprocess runs the full pre-parse chain: delimiter extraction, fence
// unwrap, preamble strip.
func Preprocess(reply string) string {
	return StripPreamble(UnwrapFence(ExtractDelimited(reply)))
}
