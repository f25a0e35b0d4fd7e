package ui

import "time"

// Controller owns the game. The view calls OnTick once per frame with the keys
// pressed since the previous frame and draws the Frame it gets back.
type Controller interface {
	OnTick(in Input, now time.Time) Frame
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	FlashStatus(msg string)
}

// Input is the set of game keys pressed during one frame.
type Input struct {
	Advance   bool
	Stop      bool
	Correct   bool
	Incorrect bool
}

func (in Input) Empty() bool {
	return !in.Advance && !in.Stop && !in.Correct && !in.Incorrect
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutWide:
		return "wide"
	case LayoutCompact:
		return "compact"
	default:
		return "too_small"
	}
}

type Page int

const (
	PageStart Page = iota
	PageTitle
	PageQuestion
	PageEnd
)

type Background int

const (
	BackgroundNeutral Background = iota
	BackgroundRed
	BackgroundBlue
)

// Frame is everything the view needs to draw one screen.
type Frame struct {
	Page       Page
	Title      string
	Background Background
	RedScore   int
	BlueScore  int
	Asked      int
	Total      int
	Question   *QuestionFrame
	Start      StartInfo
	// Status is a short line for the footer, e.g. a demo indicator.
	Status string
}

type StartInfo struct {
	Sets        int
	Questions   int
	GamesPlayed int
	BestScore   int
	RedWins     int
	BlueWins    int
	FirstTeam   string
}

type QuestionFrame struct {
	Kind string
	// Clues holds only the clues currently revealed.
	Clues      []Clue
	Sequence   bool
	Answer     string
	ShowAnswer bool

	OfferedTo  string
	PassedOver bool
	Points     int

	CountingIn       bool
	CountInRemaining time.Duration

	ShowProgress   bool
	Progress       float64
	Remaining      time.Duration
	FinalCountdown bool
	ClockStopped   bool
}

type Clue struct {
	Text    string
	Picture bool
}
