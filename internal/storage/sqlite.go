// Package storage keeps a history of played sessions in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// DefaultLimit is used when a query is given a non-positive limit.
const DefaultLimit = 10

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionRecord describes one finished game session.
type SessionRecord struct {
	ID        int64
	GameID    string
	Player    string // "local" for terminal play, the SSH user otherwise
	Spawned   int
	Locked    int
	Ticks     int
	Duration  time.Duration
	TopOut    bool
	CreatedAt time.Time
}

// Stats aggregates all sessions of a game.
type Stats struct {
	GameID     string
	Sessions   int
	MaxLocked  int
	AvgLocked  float64
	TotalTicks int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It expands a leading ~, creates parent directories and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			spawned INTEGER NOT NULL DEFAULT 0,
			locked INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			top_out INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_best ON sessions(game_id, locked DESC);
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

// SaveSession records a finished session and returns its ID.
// A zero CreatedAt is stamped with the current time.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions (game_id, player, spawned, locked, ticks, duration_ms, top_out, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Player, rec.Spawned, rec.Locked, rec.Ticks,
		rec.Duration.Milliseconds(), rec.TopOut, rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentSessions returns the latest sessions of a game, newest first.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	return s.querySessions(
		`WHERE game_id = ? ORDER BY id DESC LIMIT ?`,
		gameID, normalizeLimit(limit),
	)
}

// BestSessions returns the sessions that locked the most pieces.
// Ties go to the earlier session.
func (s *Store) BestSessions(gameID string, limit int) ([]SessionRecord, error) {
	return s.querySessions(
		`WHERE game_id = ? ORDER BY locked DESC, id ASC LIMIT ?`,
		gameID, normalizeLimit(limit),
	)
}

func (s *Store) querySessions(clause string, args ...any) ([]SessionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, player, spawned, locked, ticks, duration_ms, top_out, created_at
		 FROM sessions `+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			rec        SessionRecord
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&rec.ID, &rec.GameID, &rec.Player, &rec.Spawned, &rec.Locked,
			&rec.Ticks, &durationMS, &rec.TopOut, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// ClearSessions deletes all sessions of a game.
func (s *Store) ClearSessions(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// Stats aggregates the sessions of a game. A game with no sessions
// yields zero values.
func (s *Store) Stats(gameID string) (Stats, error) {
	stats := Stats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(locked), 0), COALESCE(AVG(locked), 0), COALESCE(SUM(ticks), 0)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Sessions, &stats.MaxLocked, &stats.AvgLocked, &stats.TotalTicks)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return stats, fmt.Errorf("storage: cannot get last played: %w", err)
	default:
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// parseTime accepts both driver-decoded times and stored strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
