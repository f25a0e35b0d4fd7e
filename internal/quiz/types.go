package quiz

import "strings"

// ClueCount is the number of clues every question carries.
const ClueCount = 4

type QuestionType int

const (
	Connection QuestionType = iota
	Sequence
)

func (t QuestionType) String() string {
	switch t {
	case Sequence:
		return "sequence"
	default:
		return "connection"
	}
}

// ParseQuestionType accepts the tags used by question bank files.
func ParseQuestionType(raw string) (QuestionType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "connection", "connections":
		return Connection, true
	case "sequence", "sequences":
		return Sequence, true
	default:
		return Connection, false
	}
}

// Image is an opaque picture payload attached to a clue.
type Image struct {
	Path string
	Data []byte
}

type Clue struct {
	Text  string
	Image *Image
}

func (c Clue) HasImage() bool { return c.Image != nil }

type Question struct {
	Type   QuestionType
	Answer string
	Clues  [ClueCount]Clue
}

type QuestionSet struct {
	Title     string
	Questions []Question
}

// CountQuestions returns the number of questions across all sets.
func CountQuestions(sets []QuestionSet) int {
	n := 0
	for _, s := range sets {
		n += len(s.Questions)
	}
	return n
}
