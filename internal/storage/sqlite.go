// Package storage provides persistence for the leaderboard and run history.
// Store uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies;
// FileStore keeps the leaderboard in a single YAML document.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

var _ leaderboard.Backend = (*Store)(nil)

// Run is one finished match kept in the history table.
type Run struct {
	ID         string
	GameID     string
	PlayerName string
	Difficulty string
	Score      int
	Kills      int
	ShotsFired int
	Hits       int
	SurvivedMs int64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under the SSH server.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			position INTEGER PRIMARY KEY,
			record_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			survived_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the leaderboard in stored order.
func (s *Store) Load(ctx context.Context) ([]leaderboard.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_id, player_name, score, created_at
		 FROM leaderboard
		 ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var records []leaderboard.Record
	for rows.Next() {
		var r leaderboard.Record
		var createdAt any
		if err := rows.Scan(&r.ID, &r.PlayerName, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Date = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Replace overwrites the leaderboard in one transaction.
func (s *Store) Replace(ctx context.Context, recs []leaderboard.Record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM leaderboard"); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	for i, r := range recs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO leaderboard (position, record_id, player_name, score, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			i+1, r.ID, r.PlayerName, r.Score, formatTime(r.Date),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save leaderboard entry: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit leaderboard: %w", err)
	}
	return nil
}

// RecordRun stores a finished match and returns its generated ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs
		 (id, game_id, player_name, difficulty, score, kills, shots, hits, survived_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.GameID, run.PlayerName, run.Difficulty, run.Score,
		run.Kills, run.ShotsFired, run.Hits, run.SurvivedMs, formatTime(run.CreatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// TopRuns retrieves the best runs for the given game, score descending.
func (s *Store) TopRuns(ctx context.Context, gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, player_name, difficulty, score, kills, shots, hits, survived_ms, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.PlayerName, &r.Difficulty, &r.Score,
			&r.Kills, &r.ShotsFired, &r.Hits, &r.SurvivedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// HighScore returns the highest recorded run score for the game, or 0.
func (s *Store) HighScore(ctx context.Context, gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes the run history for the game.
func (s *Store) ClearRuns(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	TotalKills int64
	TotalShots int64
	TotalHits  int64
	LongestRun time.Duration
	LastPlayed time.Time
}

// Accuracy returns the fraction of shots that hit across all runs.
func (g GameStats) Accuracy() float64 {
	if g.TotalShots == 0 {
		return 0
	}
	return float64(g.TotalHits) / float64(g.TotalShots)
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(ctx context.Context, gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var longestMs int64
	var lastPlayed sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(kills), 0), COALESCE(SUM(shots), 0), COALESCE(SUM(hits), 0),
		        COALESCE(MAX(survived_ms), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore,
		&stats.TotalKills, &stats.TotalShots, &stats.TotalHits, &longestMs, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	stats.LongestRun = time.Duration(longestMs) * time.Millisecond
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}
	return stats, nil
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime handles both driver-decoded times and the text layouts SQLite may return.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}
