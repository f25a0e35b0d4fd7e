package devtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectquiz/internal/session"
)

// Step is one scripted input, fired After the previous step.
type Step struct {
	After time.Duration
	Input session.Input
}

type Script struct {
	Name  string
	Steps []Step
}

// Duration is the offset of the last step.
func (s Script) Duration() time.Duration {
	var d time.Duration
	for _, st := range s.Steps {
		d += st.After
	}
	return d
}

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

var (
	advance   = session.Input{Advance: true}
	stop      = session.Input{Stop: true}
	correct   = session.Input{Correct: true}
	incorrect = session.Input{Incorrect: true}
)

// QuestionScripts lists the question scripts Autoplay rotates through.
var QuestionScripts = []string{"buzz_correct", "pass_over", "both_wrong"}

// Resolve returns the named script. Question scripts are timed from the moment
// the question is assigned, so the count-in is waited out first.
func (m *Manager) Resolve(name string, timing session.Timing) Script {
	countIn := timing.CountIn + time.Second
	switch name {
	case "page":
		return Script{Name: name, Steps: []Step{{After: 2500 * time.Millisecond, Input: advance}}}
	case "buzz_correct":
		return Script{Name: name, Steps: []Step{
			{After: countIn + 500*time.Millisecond, Input: advance},
			{After: 1500 * time.Millisecond, Input: advance},
			{After: 1500 * time.Millisecond, Input: stop},
			{After: 2 * time.Second, Input: correct},
			{After: 3 * time.Second, Input: advance},
		}}
	case "pass_over":
		return Script{Name: name, Steps: []Step{
			{After: countIn, Input: advance},
			{After: 1500 * time.Millisecond, Input: stop},
			{After: 2 * time.Second, Input: incorrect},
			{After: 2500 * time.Millisecond, Input: correct},
			{After: 3 * time.Second, Input: advance},
		}}
	case "both_wrong":
		return Script{Name: name, Steps: []Step{
			{After: countIn + time.Second, Input: stop},
			{After: 2 * time.Second, Input: incorrect},
			{After: 3 * time.Second, Input: incorrect},
			{After: 3 * time.Second, Input: advance},
		}}
	default:
		return Script{Name: "idle"}
	}
}

// SetState writes the current page and phase to dev_state.json so external
// capture tooling can wait for a given screen.
func (m *Manager) SetState(ctx context.Context, cacheDir string, state string, rendered bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		cacheDir = filepath.Join(home, ".cache", "connectquiz")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	payload := map[string]any{
		"state":    strings.TrimSpace(state),
		"rendered": rendered,
	}
	b, _ := json.Marshal(payload)
	return os.WriteFile(filepath.Join(cacheDir, "dev_state.json"), b, 0o644)
}
