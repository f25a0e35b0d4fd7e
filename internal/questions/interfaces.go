package questions

import (
	"context"

	"connectquiz/internal/quiz"
)

type Loader interface {
	LoadBank(ctx context.Context, path string) ([]quiz.QuestionSet, error)
	LoadSample() ([]quiz.QuestionSet, error)
}

var _ Loader = (*FSLoader)(nil)
