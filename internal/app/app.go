package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"connectquiz/internal/devtools"
	"connectquiz/internal/questions"
	"connectquiz/internal/quiz"
	"connectquiz/internal/session"
	"connectquiz/internal/state"
	"connectquiz/internal/telemetry"
	"connectquiz/internal/ui"

	"github.com/google/uuid"
)

const storeTimeout = 2 * time.Second

type App struct {
	cfg Config

	logger   *telemetry.JSONLogger
	store    Store
	view     View
	demo     *devtools.Manager
	autoplay devtools.Driver

	sessionID string
	bank      string
	sets      []quiz.QuestionSet
	session   *session.Session
	start     ui.StartInfo

	gameID   int64
	finished bool
	status   string
	devState string
}

func New(cfg Config) (*App, error) {
	logger, err := telemetry.NewJSONLogger(cfg.LogPath, telemetry.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}

	bank := cfg.QuestionsPath
	sets, err := loadSets(questions.NewLoader(cfg.Seed), cfg.QuestionsPath)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	if bank == "" {
		bank = "sample"
	}

	var store Store
	if !cfg.NoHistory {
		store, err = openHistory(cfg.DataDir)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
	}

	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
	})

	a := &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		view:      view,
		demo:      devtools.NewManager(),
		sessionID: uuid.NewString(),
		bank:      bank,
		sets:      sets,
		session:   session.New(sets, cfg.sessionTiming(), cfg.firstTeam()),
	}
	if cfg.Demo {
		a.autoplay = devtools.NewAutoplay(a.demo, a.session.Timing())
	}
	a.start = a.startInfo()
	view.SetController(a)
	return a, nil
}

func loadSets(loader Loader, path string) ([]quiz.QuestionSet, error) {
	var (
		sets []quiz.QuestionSet
		err  error
	)
	if path == "" {
		sets, err = loader.LoadSample()
	} else {
		sets, err = loader.LoadBank(context.Background(), path)
	}
	if err != nil {
		return nil, err
	}
	if quiz.CountQuestions(sets) == 0 {
		return nil, fmt.Errorf("question bank %q has no questions", path)
	}
	return sets, nil
}

func openHistory(dataDir string) (*state.SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	store, err := state.NewSQLite(filepath.Join(dataDir, "history.db"))
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func (a *App) startInfo() ui.StartInfo {
	info := ui.StartInfo{
		Sets:      len(a.sets),
		Questions: quiz.CountQuestions(a.sets),
		FirstTeam: a.cfg.firstTeam().String(),
	}
	if a.store == nil {
		return info
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	sum, err := a.store.GetSummary(ctx)
	if err != nil {
		a.logger.Warn("history.summary_failed", map[string]any{"error": err.Error()})
		return info
	}
	info.GamesPlayed = sum.Games
	info.BestScore = sum.BestScore
	info.RedWins = sum.RedWins
	info.BlueWins = sum.BlueWins
	return info
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", map[string]any{
		"session":   a.sessionID,
		"bank":      a.bank,
		"sets":      a.start.Sets,
		"questions": a.start.Questions,
		"demo":      a.cfg.Demo,
	})

	if a.store != nil {
		sctx, cancel := context.WithTimeout(ctx, storeTimeout)
		id, err := a.store.StartGame(sctx, state.Game{SessionID: a.sessionID, Bank: a.bank, StartTS: time.Now()})
		cancel()
		if err != nil {
			a.logger.Error("history.start_failed", map[string]any{"error": err.Error()})
		}
		a.gameID = id
	}

	if a.cfg.Demo {
		a.status = "DEMO"
		a.view.FlashStatus("Demo mode: keys still work, q quits")
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("app.cancelled", map[string]any{"session": a.sessionID})
			a.view.Stop()
		case <-done:
		}
	}()

	return a.view.Run()
}

func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	a.logger.Info("app.stop", map[string]any{"session": a.sessionID, "finished": a.finished})
	_ = a.logger.Close()
}

// OnTick advances the game by one frame and returns what to draw.
func (a *App) OnTick(in ui.Input, now time.Time) ui.Frame {
	sin := inputFor(in)
	if a.autoplay != nil {
		asked, _ := a.session.Position()
		if name := a.autoplay.Observe(a.session.Page(), asked, now); name != "" {
			a.logger.Debug("demo.script", map[string]any{"script": name, "page": a.session.Page().String(), "asked": asked})
		}
		sin = sin.Merge(a.autoplay.Due(now))
	}

	before := snapshot(a.session, now)
	page := a.session.Page()
	res := a.session.Update(sin, now)

	if before.resolvedBy(a.session) {
		a.recordResolution(before, res, now)
	}
	if a.session.Page() != page {
		a.onPageChange(now)
	}
	a.syncDevState()

	f := frameFor(a.session, now)
	f.Start = a.start
	f.Status = a.status
	return f
}

func (a *App) OnQuit() {
	asked, total := a.session.Position()
	a.logger.Info("app.quit", map[string]any{"page": a.session.Page().String(), "asked": asked, "total": total})
}

func (a *App) recordResolution(q questionSnapshot, res session.Result, now time.Time) {
	team, points := scorer(res)
	scores := a.session.Scores()
	a.logger.Info("question.resolved", map[string]any{
		"set":         q.title,
		"answer":      q.question.Answer,
		"type":        q.question.Type.String(),
		"offered_to":  q.offered.String(),
		"scored_by":   team,
		"points":      points,
		"clues_shown": q.clues,
		"elapsed_ms":  q.elapsed.Milliseconds(),
		"red":         scores.Red,
		"blue":        scores.Blue,
	})
	if a.store == nil || a.gameID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	err := a.store.RecordQuestion(ctx, state.QuestionResult{
		GameID:     a.gameID,
		SetTitle:   q.title,
		Answer:     q.question.Answer,
		Type:       q.question.Type.String(),
		OfferedTo:  q.offered.String(),
		ScoredBy:   team,
		Points:     points,
		CluesShown: q.clues,
		Elapsed:    q.elapsed,
		ResolvedTS: now,
	})
	if err != nil {
		a.logger.Error("history.record_failed", map[string]any{"error": err.Error()})
	}
}

func (a *App) onPageChange(now time.Time) {
	asked, total := a.session.Position()
	fields := map[string]any{
		"page":  a.session.Page().String(),
		"title": a.session.Title(),
		"asked": asked,
		"total": total,
	}
	if team, ok := a.session.Offering(); ok {
		fields["offered_to"] = team.String()
	}
	a.logger.Info("page.enter", fields)

	if a.session.Page() == session.EndPage {
		a.finishGame(now)
	}
}

func (a *App) finishGame(now time.Time) {
	if a.finished {
		return
	}
	a.finished = true
	scores := a.session.Scores()
	a.logger.Info("game.finished", map[string]any{"red": scores.Red, "blue": scores.Blue})
	if a.store == nil || a.gameID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := a.store.FinishGame(ctx, a.gameID, scores.Red, scores.Blue, now); err != nil {
		a.logger.Error("history.finish_failed", map[string]any{"error": err.Error()})
	}
}

// syncDevState mirrors the current screen into dev_state.json when a dev
// state directory is configured. It only writes on change.
func (a *App) syncDevState() {
	if a.cfg.DevStateDir == "" {
		return
	}
	label := devStateFor(a.session)
	if label == a.devState {
		return
	}
	a.devState = label
	if err := a.demo.SetState(context.Background(), a.cfg.DevStateDir, label, true); err != nil {
		a.logger.Warn("dev.state_failed", map[string]any{"state": label, "error": err.Error()})
	}
}

var _ ui.Controller = (*App)(nil)
