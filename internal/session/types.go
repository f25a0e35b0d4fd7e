package session

import "time"

type Page int

const (
	StartPage Page = iota
	TitlePage
	QuestionPage
	EndPage
)

func (p Page) String() string {
	switch p {
	case StartPage:
		return "start"
	case TitlePage:
		return "title"
	case QuestionPage:
		return "question"
	case EndPage:
		return "end"
	default:
		return "unknown"
	}
}

type Team int

const (
	Red Team = iota
	Blue
)

func (t Team) String() string {
	if t == Blue {
		return "blue"
	}
	return "red"
}

func (t Team) Other() Team {
	if t == Blue {
		return Red
	}
	return Blue
}

// Background is the colour the whole screen is painted in.
type Background int

const (
	Neutral Background = iota
	RedBackground
	BlueBackground
)

func (b Background) String() string {
	switch b {
	case RedBackground:
		return "red"
	case BlueBackground:
		return "blue"
	default:
		return "neutral"
	}
}

func backgroundFor(t Team) Background {
	if t == Blue {
		return BlueBackground
	}
	return RedBackground
}

// Input is the aggregated key state for one tick.
type Input struct {
	Advance   bool
	Stop      bool
	Correct   bool
	Incorrect bool
}

func (in Input) Empty() bool {
	return !in.Advance && !in.Stop && !in.Correct && !in.Incorrect
}

// Merge combines two inputs observed during the same tick.
func (in Input) Merge(other Input) Input {
	return Input{
		Advance:   in.Advance || other.Advance,
		Stop:      in.Stop || other.Stop,
		Correct:   in.Correct || other.Correct,
		Incorrect: in.Incorrect || other.Incorrect,
	}
}

// Result is what a single Update produced. At most one delta is non-zero.
type Result struct {
	Advance   bool
	RedDelta  int
	BlueDelta int
}

func (r Result) award(t Team, points int) Result {
	if t == Blue {
		r.BlueDelta = points
	} else {
		r.RedDelta = points
	}
	return r
}

type Timing struct {
	CountIn time.Duration
	Answer  time.Duration
	Warning time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		CountIn: 3 * time.Second,
		Answer:  45 * time.Second,
		Warning: 5 * time.Second,
	}
}

// Scores is a pair of running totals.
type Scores struct {
	Red  int
	Blue int
}

func (s Scores) Of(t Team) int {
	if t == Blue {
		return s.Blue
	}
	return s.Red
}
