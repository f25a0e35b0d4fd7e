// Package phase models the reveal states a question moves through and the
// points a correct answer is worth in each of them.
//
// Phase is a closed union over the two question types: every operation
// switches on the state tag and, where the types differ, on the type.
package phase

import (
	"errors"
	"fmt"

	"connectquiz/internal/quiz"
)

// ErrContract is wrapped by the value of every panic raised when an operation
// is invoked in a state that does not allow it.
var ErrContract = errors.New("phase: operation not allowed in current state")

type State int

const (
	CountIn State = iota
	OneClue
	TwoClues
	ThreeClues
	FourClues
	PassedOver
	AnswerShown
)

func (s State) String() string {
	switch s {
	case CountIn:
		return "count_in"
	case OneClue:
		return "one_clue"
	case TwoClues:
		return "two_clues"
	case ThreeClues:
		return "three_clues"
	case FourClues:
		return "four_clues"
	case PassedOver:
		return "passed_over"
	case AnswerShown:
		return "answer_shown"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Phase struct {
	kind  quiz.QuestionType
	state State
}

// New returns the initial count-in phase for a question of the given type.
func New(kind quiz.QuestionType) Phase {
	return Phase{kind: kind, state: CountIn}
}

func (p Phase) Kind() quiz.QuestionType { return p.kind }
func (p Phase) State() State            { return p.state }

func (p Phase) String() string {
	return p.kind.String() + "/" + p.state.String()
}

// maxShown is the highest "N clues shown" state for the question type.
func (p Phase) maxShown() State {
	switch p.kind {
	case quiz.Sequence:
		return ThreeClues
	default:
		return FourClues
	}
}

func (p Phase) revealing() bool {
	return p.state >= OneClue && p.state <= FourClues
}

// Points is the score for a correct answer in the current state.
func (p Phase) Points() int {
	switch p.state {
	case OneClue:
		return 5
	case TwoClues:
		return 3
	case ThreeClues:
		return 2
	case FourClues:
		if p.kind == quiz.Sequence {
			violation("Points", p)
		}
		return 1
	case PassedOver:
		return 1
	default:
		violation("Points", p)
		return 0
	}
}

// PassOver hands the question to the other team. Only valid while clues are
// being revealed.
func (p *Phase) PassOver() {
	if !p.revealing() {
		violation("PassOver", *p)
	}
	p.state = PassedOver
}

// ShowAnswer moves to the terminal state. Repeated calls are no-ops.
func (p *Phase) ShowAnswer() {
	switch p.state {
	case CountIn:
		violation("ShowAnswer", *p)
	case AnswerShown:
		return
	}
	p.state = AnswerShown
}

// Next reveals one more clue, saturating at the type's last revealable clue.
func (p *Phase) Next() {
	switch p.state {
	case PassedOver, AnswerShown:
		violation("Next", *p)
	}
	if p.state < p.maxShown() {
		p.state++
	}
}

func (p Phase) CluesToShow() int {
	switch p.state {
	case CountIn:
		return 0
	case OneClue:
		return 1
	case TwoClues:
		return 2
	case ThreeClues:
		return 3
	case FourClues:
		return 4
	case PassedOver:
		return int(p.maxShown())
	case AnswerShown:
		// Sequences reveal their fourth clue alongside the answer.
		return quiz.ClueCount
	default:
		return 0
	}
}

func (p Phase) IsCountIn() bool     { return p.state == CountIn }
func (p Phase) IsPassedOver() bool  { return p.state == PassedOver }
func (p Phase) IsAnswerShown() bool { return p.state == AnswerShown }

// IsFirstTeamGuess reports whether the offering team still holds the question.
func (p Phase) IsFirstTeamGuess() bool { return p.revealing() }

func (p Phase) IsProgressBarShown() bool {
	return p.revealing() || p.state == PassedOver
}

func violation(op string, p Phase) {
	panic(fmt.Errorf("%w: %s in %s", ErrContract, op, p))
}
