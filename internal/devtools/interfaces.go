package devtools

import (
	"context"
	"time"

	"connectquiz/internal/session"
)

type Demo interface {
	Resolve(name string, timing session.Timing) Script
	SetState(ctx context.Context, cacheDir string, state string, rendered bool) error
}

// Driver feeds scripted input into the presentation.
type Driver interface {
	Observe(page session.Page, asked int, now time.Time) string
	Due(now time.Time) session.Input
}

var (
	_ Demo   = (*Manager)(nil)
	_ Driver = (*Autoplay)(nil)
)
