package session

import "connectquiz/internal/quiz"

// Cursor walks the flattened sequence of set titles and questions: each set
// contributes its title followed by its questions, in order.
type Cursor struct {
	Set      int
	Question int // -1 while positioned on the set title
	started  bool
}

// Element is what a cursor currently points at.
type Element struct {
	End      bool
	Title    string
	Question *quiz.Question
}

// Next returns the cursor advanced by one element. It does not modify c.
func (c Cursor) Next(sets []quiz.QuestionSet) Cursor {
	if !c.started {
		return Cursor{Set: 0, Question: -1, started: true}
	}
	if c.Set >= len(sets) {
		return c
	}
	if c.Question+1 < len(sets[c.Set].Questions) {
		c.Question++
		return c
	}
	return Cursor{Set: c.Set + 1, Question: -1, started: true}
}

// Element resolves the cursor against sets.
func (c Cursor) Element(sets []quiz.QuestionSet) Element {
	if !c.started || c.Set >= len(sets) {
		return Element{End: c.started}
	}
	set := &sets[c.Set]
	if c.Question < 0 {
		return Element{Title: set.Title}
	}
	return Element{Title: set.Title, Question: &set.Questions[c.Question]}
}
