package app

import (
	"context"
	"time"

	"connectquiz/internal/quiz"
	"connectquiz/internal/state"
)

type Store interface {
	StartGame(ctx context.Context, game state.Game) (int64, error)
	RecordQuestion(ctx context.Context, result state.QuestionResult) error
	FinishGame(ctx context.Context, gameID int64, red, blue int, endTS time.Time) error
	GetSummary(ctx context.Context) (state.Summary, error)
	Close() error
}

type Loader interface {
	LoadBank(ctx context.Context, path string) ([]quiz.QuestionSet, error)
	LoadSample() ([]quiz.QuestionSet, error)
}

type View interface {
	Run() error
	Stop()
	FlashStatus(msg string)
}
