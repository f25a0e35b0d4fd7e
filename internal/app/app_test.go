package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectquiz/internal/devtools"
	"connectquiz/internal/questions"
	"connectquiz/internal/quiz"
	"connectquiz/internal/session"
	"connectquiz/internal/state"
	"connectquiz/internal/telemetry"
	"connectquiz/internal/ui"
)

var t0 = time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC)

type fakeStore struct {
	started  []state.Game
	results  []state.QuestionResult
	finished [][2]int
	summary  state.Summary
	closed   bool
}

func (f *fakeStore) StartGame(_ context.Context, g state.Game) (int64, error) {
	f.started = append(f.started, g)
	return int64(len(f.started)), nil
}

func (f *fakeStore) RecordQuestion(_ context.Context, r state.QuestionResult) error {
	f.results = append(f.results, r)
	return nil
}

func (f *fakeStore) FinishGame(_ context.Context, _ int64, red, blue int, _ time.Time) error {
	f.finished = append(f.finished, [2]int{red, blue})
	return nil
}

func (f *fakeStore) GetSummary(context.Context) (state.Summary, error) { return f.summary, nil }
func (f *fakeStore) Close() error                                       { f.closed = true; return nil }

type fakeView struct {
	flashes []string
	stopped int
}

func (f *fakeView) Run() error             { return nil }
func (f *fakeView) Stop()                  { f.stopped++ }
func (f *fakeView) FlashStatus(msg string) { f.flashes = append(f.flashes, msg) }

func clues(words ...string) [quiz.ClueCount]quiz.Clue {
	var out [quiz.ClueCount]quiz.Clue
	for i, w := range words {
		out[i] = quiz.Clue{Text: w}
	}
	return out
}

func testSets() []quiz.QuestionSet {
	return []quiz.QuestionSet{{Title: "Warm-up", Questions: []quiz.Question{
		{Type: quiz.Connection, Answer: "Keys", Clues: clues("Piano", "Map", "Computer", "Florida")},
		{Type: quiz.Sequence, Answer: "Days", Clues: clues("Fri", "Sat", "Sun", "Mon")},
	}}}
}

func newTestApp(t *testing.T, store *fakeStore) *App {
	t.Helper()
	cfg := DefaultConfig()
	s := session.New(testSets(), cfg.sessionTiming(), session.Red)
	a := &App{
		cfg:     cfg,
		logger:  telemetry.NewWriterLogger(&strings.Builder{}, telemetry.LevelDebug),
		view:    &fakeView{},
		demo:    devtools.NewManager(),
		sets:    testSets(),
		session: s,
		gameID:  1,
	}
	if store != nil {
		a.store = store
	}
	a.start = a.startInfo()
	return a
}

// step ticks the app once with in and returns the frame and the next instant.
func step(a *App, in ui.Input, now time.Time) (ui.Frame, time.Time) {
	f := a.OnTick(in, now)
	return f, now.Add(time.Second / 30)
}

func TestStartFrameCarriesBankAndHistory(t *testing.T) {
	store := &fakeStore{summary: state.Summary{Games: 4, BestScore: 12, RedWins: 3, BlueWins: 1}}
	a := newTestApp(t, store)
	f := a.OnTick(ui.Input{}, t0)
	if f.Page != ui.PageStart {
		t.Fatalf("expected start page, got %v", f.Page)
	}
	want := ui.StartInfo{Sets: 1, Questions: 2, FirstTeam: "red", GamesPlayed: 4, BestScore: 12, RedWins: 3, BlueWins: 1}
	if f.Start != want {
		t.Fatalf("unexpected start info %+v", f.Start)
	}
}

func TestQuestionFrameShowsRevealedClues(t *testing.T) {
	a := newTestApp(t, nil)
	now := t0
	_, now = step(a, ui.Input{Advance: true}, now) // title
	_, now = step(a, ui.Input{Advance: true}, now) // question
	f, now := step(a, ui.Input{}, now)
	if f.Page != ui.PageQuestion || f.Question == nil {
		t.Fatalf("expected question frame, got %+v", f)
	}
	if !f.Question.CountingIn || len(f.Question.Clues) != 0 {
		t.Fatalf("expected count-in with no clues, got %+v", f.Question)
	}
	if f.Background != ui.BackgroundRed || f.Question.OfferedTo != "red" {
		t.Fatalf("expected red to be offered, got %v %q", f.Background, f.Question.OfferedTo)
	}

	now = now.Add(a.cfg.Timing.CountIn)
	_, now = step(a, ui.Input{}, now)
	f, _ = step(a, ui.Input{Advance: true}, now)
	if len(f.Question.Clues) != 2 || f.Question.Clues[1].Text != "Map" {
		t.Fatalf("expected two clues, got %+v", f.Question.Clues)
	}
	if f.Question.Points != 3 || !f.Question.ShowProgress {
		t.Fatalf("expected 3 points with the timer running, got %+v", f.Question)
	}
}

func TestResolutionIsRecordedOnce(t *testing.T) {
	store := &fakeStore{}
	a := newTestApp(t, store)
	now := t0
	_, now = step(a, ui.Input{Advance: true}, now)
	_, now = step(a, ui.Input{Advance: true}, now)
	now = now.Add(a.cfg.Timing.CountIn)
	_, now = step(a, ui.Input{}, now)
	_, now = step(a, ui.Input{Stop: true}, now)
	f, now := step(a, ui.Input{Correct: true}, now)
	_, _ = step(a, ui.Input{}, now)

	if !f.Question.ShowAnswer || f.RedScore != 5 {
		t.Fatalf("expected answer shown with red on 5, got %+v red=%d", f.Question, f.RedScore)
	}
	if len(store.results) != 1 {
		t.Fatalf("expected one recorded result, got %d", len(store.results))
	}
	r := store.results[0]
	if r.Answer != "Keys" || r.ScoredBy != "red" || r.Points != 5 || r.CluesShown != 1 || r.OfferedTo != "red" {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.GameID != 1 || r.SetTitle != "Warm-up" || r.Type != "connection" {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestPassedOverStealIsCreditedToOtherTeam(t *testing.T) {
	store := &fakeStore{}
	a := newTestApp(t, store)
	now := t0
	_, now = step(a, ui.Input{Advance: true}, now)
	_, now = step(a, ui.Input{Advance: true}, now)
	now = now.Add(a.cfg.Timing.CountIn)
	_, now = step(a, ui.Input{}, now)
	_, now = step(a, ui.Input{Stop: true}, now)
	f, now := step(a, ui.Input{Incorrect: true}, now)
	if !f.Question.PassedOver || f.Background != ui.BackgroundBlue {
		t.Fatalf("expected pass over to blue, got %+v", f)
	}
	f, _ = step(a, ui.Input{Correct: true}, now)
	if f.BlueScore != 1 {
		t.Fatalf("expected blue to steal one point, got %d", f.BlueScore)
	}
	if len(store.results) != 1 || store.results[0].ScoredBy != "blue" || store.results[0].Points != 1 {
		t.Fatalf("unexpected results %+v", store.results)
	}
}

func TestGameFinishesOnceAtEndPage(t *testing.T) {
	store := &fakeStore{}
	a := newTestApp(t, store)
	now := t0
	var f ui.Frame
	for i := 0; i < 20 && f.Page != ui.PageEnd; i++ {
		// Nobody buzzes: each question times out, is passed over and then
		// marked wrong before moving on.
		if f.Page == ui.PageQuestion && f.Question != nil && !f.Question.ShowAnswer && !f.Question.PassedOver {
			now = now.Add(a.cfg.Timing.Answer + a.cfg.Timing.CountIn)
		}
		in := ui.Input{Advance: true}
		if f.Question != nil && f.Question.PassedOver {
			in = ui.Input{Incorrect: true}
		}
		f, now = step(a, in, now)
	}
	if f.Page != ui.PageEnd {
		t.Fatalf("expected end page, got %v", f.Page)
	}
	_, _ = step(a, ui.Input{Advance: true}, now)
	if len(store.finished) != 1 || store.finished[0] != [2]int{0, 0} {
		t.Fatalf("expected one finished game at 0-0, got %+v", store.finished)
	}
	if len(store.results) != 2 {
		t.Fatalf("expected both questions recorded, got %d", len(store.results))
	}
}

func TestNoHistoryStillPlays(t *testing.T) {
	a := newTestApp(t, nil)
	if a.store != nil {
		t.Fatalf("expected no store")
	}
	now := t0
	_, now = step(a, ui.Input{Advance: true}, now)
	f, _ := step(a, ui.Input{Advance: true}, now)
	if f.Page != ui.PageQuestion {
		t.Fatalf("expected question page, got %v", f.Page)
	}
}

func TestDemoAutoplayDrivesInput(t *testing.T) {
	a := newTestApp(t, nil)
	a.autoplay = devtools.NewAutoplay(a.demo, a.session.Timing())
	a.status = "DEMO"
	now := t0
	var f ui.Frame
	for i := 0; i < 30*10 && f.Page != ui.PageQuestion; i++ {
		f, now = step(a, ui.Input{}, now)
	}
	if f.Page != ui.PageQuestion {
		t.Fatalf("expected autoplay to reach a question, got %v", f.Page)
	}
	if f.Status != "DEMO" {
		t.Fatalf("expected demo status, got %q", f.Status)
	}
}

func TestDevStateWrittenOnChange(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, nil)
	a.cfg.DevStateDir = dir
	now := t0
	_, now = step(a, ui.Input{}, now)
	_, _ = step(a, ui.Input{Advance: true}, now)
	b, err := os.ReadFile(filepath.Join(dir, "dev_state.json"))
	if err != nil {
		t.Fatalf("read dev state: %v", err)
	}
	if !strings.Contains(string(b), `"state":"title"`) {
		t.Fatalf("unexpected dev state %s", b)
	}
}

func TestRunStopsViewOnCancel(t *testing.T) {
	store := &fakeStore{}
	a := newTestApp(t, store)
	a.bank = "bank.txt"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(store.started) != 1 || store.started[0].Bank != "bank.txt" {
		t.Fatalf("expected game start recorded, got %+v", store.started)
	}
	a.Close()
	if !store.closed {
		t.Fatalf("expected store closed")
	}
}

func TestLoadSetsRejectsEmptyBank(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(path, []byte("kind: bank\nschema_version: 1\nsets: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSets(questions.NewLoader(1), path); err == nil {
		t.Fatalf("expected error for empty bank")
	}
	sets, err := loadSets(questions.NewLoader(1), "")
	if err != nil || len(sets) == 0 {
		t.Fatalf("expected sample sets, got %d (%v)", len(sets), err)
	}
}
