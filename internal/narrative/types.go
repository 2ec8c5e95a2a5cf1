// Package narrative recovers a structured story from an LLM's free-form
// markdown reply. The reply may use any of several interchangeable
// heading and list conventions for declaring quests, and may open with
// throwaway commentary; the parser tolerates all of it and never fails —
// unrecoverable input degrades to placeholders that callers can detect.
package narrative

import "fmt"

// PlaceholderTitle is used when no depth-1 heading is found.
const PlaceholderTitle = "Untitled Adventure"

// PlaceholderStory is used when no story text is found.
const PlaceholderStory = "The adventure begins in this codebase."

// Quest is one narrative chapter, tied to zero or more source files.
type Quest struct {
	// ID is derived from the quest's 1-based position after all quests
	// have been collected ("quest-3"). Model-supplied numbering is
	// never used: it may be discontinuous or duplicated.
	ID string

	Title       string
	Description string

	// CodeFiles lists the source file references attached to the quest.
	CodeFiles []string
}

// Narrative is the structured result extracted from a reply.
type Narrative struct {
	Title  string
	Story  string
	Quests []Quest
}

// Outcome classifies what a reply yielded.
type Outcome int

const (
	// OutcomeComplete means a title or story plus at least one quest
	// was recovered.
	OutcomeComplete Outcome = iota
	// OutcomeNoQuests means narrative text was recovered but no quests.
	OutcomeNoQuests
	// OutcomeEmpty means nothing usable was extracted; the narrative
	// holds only placeholders.
	OutcomeEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomeNoQuests:
		return "no-quests"
	case OutcomeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

func questID(position int) string {
	return fmt.Sprintf("quest-%d", position)
}
