package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ History = (*SQLiteStore)(nil)

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			bank TEXT NOT NULL,
			start_ts TEXT NOT NULL,
			end_ts TEXT NOT NULL DEFAULT '',
			red_score INTEGER NOT NULL DEFAULT 0,
			blue_score INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS question_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id INTEGER NOT NULL,
			set_title TEXT NOT NULL DEFAULT '',
			answer TEXT NOT NULL,
			question_type TEXT NOT NULL,
			offered_to TEXT NOT NULL,
			scored_by TEXT NOT NULL DEFAULT '',
			points INTEGER NOT NULL DEFAULT 0,
			clues_shown INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			resolved_ts TEXT NOT NULL,
			FOREIGN KEY(game_id) REFERENCES games(id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) StartGame(ctx context.Context, game Game) (int64, error) {
	start := game.StartTS
	if start.IsZero() {
		start = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games(session_id, bank, start_ts) VALUES(?,?,?)`,
		game.SessionID,
		strings.TrimSpace(game.Bank),
		start.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) RecordQuestion(ctx context.Context, r QuestionResult) error {
	resolved := r.ResolvedTS
	if resolved.IsZero() {
		resolved = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO question_results(game_id, set_title, answer, question_type, offered_to, scored_by, points, clues_shown, elapsed_ms, resolved_ts)
		VALUES(?,?,?,?,?,?,?,?,?,?)
	`,
		r.GameID,
		r.SetTitle,
		r.Answer,
		r.Type,
		r.OfferedTo,
		r.ScoredBy,
		max(0, r.Points),
		r.CluesShown,
		r.Elapsed.Milliseconds(),
		resolved.UTC().Format(timeLayout),
	); err != nil {
		return err
	}
	// Running totals keep the games row readable if the process dies mid-game.
	switch r.ScoredBy {
	case "red":
		_, err = tx.ExecContext(ctx, `UPDATE games SET red_score = red_score + ? WHERE id = ?`, r.Points, r.GameID)
	case "blue":
		_, err = tx.ExecContext(ctx, `UPDATE games SET blue_score = blue_score + ? WHERE id = ?`, r.Points, r.GameID)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) FinishGame(ctx context.Context, gameID int64, red, blue int, endTS time.Time) error {
	if endTS.IsZero() {
		endTS = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET red_score = ?, blue_score = ?, end_ts = ?, finished = 1 WHERE id = ?`,
		red, blue, endTS.UTC().Format(timeLayout), gameID,
	)
	return err
}

func (s *SQLiteStore) GetSummary(ctx context.Context) (Summary, error) {
	var out Summary
	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS games,
			COALESCE(MAX(MAX(red_score, blue_score)), 0) AS best_score,
			COALESCE(SUM(CASE WHEN finished = 1 AND red_score > blue_score THEN 1 ELSE 0 END), 0) AS red_wins,
			COALESCE(SUM(CASE WHEN finished = 1 AND blue_score > red_score THEN 1 ELSE 0 END), 0) AS blue_wins
		FROM games
	`)
	if err := row.Scan(&out.Games, &out.BestScore, &out.RedWins, &out.BlueWins); err != nil {
		return Summary{}, err
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM question_results`)
	if err := row.Scan(&out.Questions); err != nil {
		return Summary{}, err
	}
	return out, nil
}

func (s *SQLiteStore) GetLastGame(ctx context.Context) (*LastGame, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT bank, start_ts, red_score, blue_score, finished
		FROM games
		ORDER BY id DESC
		LIMIT 1
	`)
	var (
		out        LastGame
		startTSRaw string
		finished   int
	)
	if err := row.Scan(&out.Bank, &startTSRaw, &out.Red, &out.Blue, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if t, err := time.Parse(timeLayout, startTSRaw); err == nil {
		out.StartTS = t
	}
	out.Finished = finished == 1
	return &out, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
