package narrative

import (
	"regexp"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share — per-call state lives in the reader created by Parse.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdownParser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New()
	})
	return markdownInstance
}

// sectionNone is the section sentinel before any depth-2 heading.
const sectionNone = ""

// paragraphQuest matches the single-paragraph quest convention:
// "**Quest 3: Title** — description". Title and description arrive in
// one event, so such quests commit immediately.
var paragraphQuest = regexp.MustCompile(`(?i)^\*\*quest\s+\d+\s*[:.]\s*(.+?)\*\*\s*[-–—:]\s*(.+)$`)

// listQuest matches the numbered-list quest convention:
// "**Title** — description" as a list item.
var listQuest = regexp.MustCompile(`^\*\*(.+?)\*\*\s*[-–—:]\s*(.+)$`)

// numberedTitle strips a model-supplied "Quest N:" prefix from a title;
// positional IDs replace the numbering anyway.
var numberedTitle = regexp.MustCompile(`(?i)^quest\s*\d+\s*[:.]\s*`)

// sourceExtensions recognizes bare filenames as file references when no
// path separator is present.
var sourceExtensions = []string{
	".go", ".ts", ".tsx", ".js", ".jsx", ".py", ".rs", ".java", ".rb",
	".c", ".h", ".cpp", ".cs", ".php", ".swift", ".kt", ".md", ".json",
	".yaml", ".yml", ".toml", ".css", ".html", ".sh", ".sql",
}

// Parse extracts a structured narrative from an LLM markdown reply.
// It never fails: absence of recognizable structure degrades to
// placeholder title and story and an empty quest list. Callers that
// need the degraded cases distinguished should use ParseReply.
func Parse(markdown string) Narrative {
	source := []byte(markdown)
	doc := markdownParser().Parser().Parse(text.NewReader(source))

	s := &replyScanner{source: source}
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			s.heading(n)
		case *ast.Paragraph:
			s.paragraph(n)
		case *ast.List:
			s.list(n)
		}
	}
	s.commitPending()

	return s.finish()
}

// ParseReply runs the pre-processing chain and Parse, classifying the
// result so callers can tell "nothing usable" from a clean extraction.
func ParseReply(reply string) (Narrative, Outcome) {
	n := Parse(Preprocess(reply))
	switch {
	case n.Title == PlaceholderTitle && n.Story == PlaceholderStory && len(n.Quests) == 0:
		return n, OutcomeEmpty
	case len(n.Quests) == 0:
		return n, OutcomeNoQuests
	default:
		return n, OutcomeComplete
	}
}

// replyScanner is the state machine over block events. One section
// variable, one pending quest, nothing else.
type replyScanner struct {
	source []byte

	title      string
	titleSeen  bool
	storyParts []string
	quests     []Quest

	// section is the lower-cased text of the most recent depth-2
	// heading; sectionNone before any is seen.
	section string

	// pending is the quest being accumulated under the heading
	// convention, nil otherwise.
	pending *Quest
}

func (s *replyScanner) heading(n *ast.Heading) {
	txt := strings.TrimSpace(s.text(n))
	switch n.Level {
	case 1:
		// First depth-1 heading wins; later ones are noise.
		if !s.titleSeen {
			s.title = txt
			s.titleSeen = true
		}
	case 2:
		s.commitPending()
		s.section = strings.ToLower(txt)
	case 3:
		if !isQuestSection(s.section) {
			return
		}
		s.commitPending()
		s.pending = &Quest{Title: strings.TrimSpace(numberedTitle.ReplaceAllString(txt, ""))}
	}
}

func (s *replyScanner) paragraph(n *ast.Paragraph) {
	txt := strings.TrimSpace(s.text(n))
	if txt == "" {
		return
	}

	if m := paragraphQuest.FindStringSubmatch(txt); m != nil && isQuestSection(s.section) {
		// Title and description arrive together: commit whatever was
		// pending, then commit this quest outright.
		s.commitPending()
		s.commit(Quest{Title: strings.TrimSpace(m[1]), Description: strings.TrimSpace(m[2])})
		return
	}

	if isStorySection(s.section) {
		s.storyParts = append(s.storyParts, txt)
		return
	}

	if s.pending != nil {
		if s.pending.Description == "" {
			s.pending.Description = txt
		} else {
			s.pending.Description += "\n\n" + txt
		}
	}
}

func (s *replyScanner) list(n *ast.List) {
	if !isQuestSection(s.section) {
		return
	}

	items := s.listItems(n)

	// First pass: does any item use the bold quest convention? If so
	// the whole list is quest declarations and non-matching items are
	// ignored.
	declaresQuests := false
	for _, item := range items {
		if listQuest.MatchString(item) {
			declaresQuests = true
			break
		}
	}

	if declaresQuests {
		s.commitPending()
		for _, item := range items {
			m := listQuest.FindStringSubmatch(item)
			if m == nil {
				continue
			}
			title := strings.TrimSpace(numberedTitle.ReplaceAllString(m[1], ""))
			s.commit(Quest{Title: title, Description: strings.TrimSpace(m[2])})
		}
		return
	}

	// Otherwise the list holds file references for the pending quest.
	if s.pending == nil {
		return
	}
	for _, item := range items {
		if ref := strings.TrimSpace(item); isFileReference(ref) {
			s.pending.CodeFiles = append(s.pending.CodeFiles, ref)
		}
	}
}

// commitPending commits the accumulating quest if it has both a title
// and a description; an incomplete pending quest is discarded.
func (s *replyScanner) commitPending() {
	if s.pending == nil {
		return
	}
	q := *s.pending
	s.pending = nil
	if q.Title == "" || q.Description == "" {
		return
	}
	s.commit(q)
}

// commit assigns the positional ID and appends the quest. IDs come from
// commit order alone.
func (s *replyScanner) commit(q Quest) {
	q.ID = questID(len(s.quests) + 1)
	s.quests = append(s.quests, q)
}

func (s *replyScanner) finish() Narrative {
	n := Narrative{
		Title:  s.title,
		Story:  strings.Join(s.storyParts, "\n\n"),
		Quests: s.quests,
	}
	if !s.titleSeen || n.Title == "" {
		n.Title = PlaceholderTitle
	}
	if n.Story == "" {
		n.Story = PlaceholderStory
	}
	return n
}

// listItems extracts the flattened text of each item in a list.
func (s *replyScanner) listItems(n *ast.List) []string {
	var items []string
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		items = append(items, strings.TrimSpace(s.text(item)))
	}
	return items
}

// text reconstructs the plain text of a node, re-inserting emphasis
// markers so the bold-pattern regexps can see them (goldmark strips the
// literal asterisks into Emphasis nodes).
func (s *replyScanner) text(node ast.Node) string {
	var b strings.Builder
	s.appendText(&b, node)
	return b.String()
}

func (s *replyScanner) appendText(b *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(s.source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			b.WriteByte('\n')
		}
	case *ast.Emphasis:
		marker := strings.Repeat("*", n.Level)
		b.WriteString(marker)
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			s.appendText(b, child)
		}
		b.WriteString(marker)
	case *ast.CodeSpan:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			s.appendText(b, child)
		}
	default:
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			s.appendText(b, child)
		}
	}
}

// questSectionNames and storySectionNames are the recognized depth-2
// section headings beyond the substring checks.
var (
	questSectionNames = map[string]bool{
		"adventures": true,
		"chapters":   true,
	}
	storySectionNames = map[string]bool{
		"narrative": true,
		"tale":      true,
		"the tale":  true,
	}
)

// isFileReference applies the file-reference heuristic: the text must
// contain a dot, and either contain a path separator or end in a
// recognized source-file extension.
func isFileReference(text string) bool {
	if !strings.Contains(text, ".") {
		return false
	}
	if strings.Contains(text, "/") {
		return true
	}
	lower := strings.ToLower(text)
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func isQuestSection(section string) bool {
	return strings.Contains(section, "quest") || questSectionNames[section]
}

func isStorySection(section string) bool {
	return strings.Contains(section, "story") || storySectionNames[section]
}
