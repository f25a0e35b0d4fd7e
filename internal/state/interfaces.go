package state

import (
	"context"
	"time"
)

// History is an append-only journal of played games. It is never read back
// to resume a game.
type History interface {
	EnsureSchema(ctx context.Context) error
	StartGame(ctx context.Context, game Game) (int64, error)
	RecordQuestion(ctx context.Context, result QuestionResult) error
	FinishGame(ctx context.Context, gameID int64, red, blue int, endTS time.Time) error
	GetSummary(ctx context.Context) (Summary, error)
	GetLastGame(ctx context.Context) (*LastGame, error)
	Close() error
}

type Game struct {
	SessionID string
	Bank      string
	StartTS   time.Time
}

type QuestionResult struct {
	GameID     int64
	SetTitle   string
	Answer     string
	Type       string
	OfferedTo  string
	ScoredBy   string
	Points     int
	CluesShown int
	Elapsed    time.Duration
	ResolvedTS time.Time
}

type Summary struct {
	Games     int
	Questions int
	BestScore int
	RedWins   int
	BlueWins  int
}

type LastGame struct {
	Bank     string
	StartTS  time.Time
	Red      int
	Blue     int
	Finished bool
}
