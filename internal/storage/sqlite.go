// Package storage provides SQLite-based persistence for level times,
// saved games and campaign progress.
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

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// TimeEntry is one recorded level clear.
type TimeEntry struct {
	ID        int64
	GameID    string
	Level     int // 0-based
	Seconds   int
	CreatedAt time.Time
}

// Progress tracks how far a player got in a campaign.
type Progress struct {
	GameID         string
	HighestLevel   int // Highest level reached, 0-based
	GamesCompleted int
	UpdatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS times (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			seconds INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_times_best ON times(game_id, level, seconds ASC);

		CREATE TABLE IF NOT EXISTS saves (
			game_id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS progress (
			game_id TEXT PRIMARY KEY,
			highest_level INTEGER NOT NULL DEFAULT 0,
			games_completed INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// RecordTime stores a level clear and reports whether it beat the previous
// best time for that level. The first clear of a level is always a best.
func (s *Store) RecordTime(gameID string, level, seconds int) (bool, error) {
	prev, ok, err := s.BestTime(gameID, level)
	if err != nil {
		return false, err
	}

	if _, err := s.db.Exec(
		"INSERT INTO times (game_id, level, seconds) VALUES (?, ?, ?)",
		gameID, level, seconds,
	); err != nil {
		return false, fmt.Errorf("storage: cannot record time: %w", err)
	}

	return !ok || seconds < prev, nil
}

// BestTime returns the fastest clear of a level. ok is false if the level
// has never been cleared.
func (s *Store) BestTime(gameID string, level int) (seconds int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(seconds) FROM times WHERE game_id = ? AND level = ?",
		gameID, level,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot get best time: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// BestTimes returns the best time of every cleared level, keyed by level.
func (s *Store) BestTimes(gameID string) (map[int]int, error) {
	rows, err := s.db.Query(
		`SELECT level, MIN(seconds)
		 FROM times
		 WHERE game_id = ?
		 GROUP BY level`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	defer rows.Close()

	best := make(map[int]int)
	for rows.Next() {
		var level, seconds int
		if err := rows.Scan(&level, &seconds); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[level] = seconds
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// TopTimes retrieves the fastest N clears of a level, fastest first.
func (s *Store) TopTimes(gameID string, level, limit int) ([]TimeEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level, seconds, created_at
		 FROM times
		 WHERE game_id = ? AND level = ?
		 ORDER BY seconds ASC, id ASC
		 LIMIT ?`,
		gameID, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query times: %w", err)
	}
	defer rows.Close()

	return scanTimes(rows)
}

// RecentTimes retrieves the latest N clears of any level, newest first.
func (s *Store) RecentTimes(gameID string, limit int) ([]TimeEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level, seconds, created_at
		 FROM times
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query times: %w", err)
	}
	defer rows.Close()

	return scanTimes(rows)
}

func scanTimes(rows *sql.Rows) ([]TimeEntry, error) {
	var entries []TimeEntry
	for rows.Next() {
		var e TimeEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Level, &e.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearTimes deletes all recorded times for the given game.
func (s *Store) ClearTimes(gameID string) error {
	_, err := s.db.Exec("DELETE FROM times WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear times: %w", err)
	}
	return nil
}

// SaveGame stores the encoded saved game, replacing any previous one.
func (s *Store) SaveGame(gameID string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (game_id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		gameID, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame returns the saved game. ok is false when there is none.
func (s *Store) LoadGame(gameID string) (data []byte, ok bool, err error) {
	var text string
	err = s.db.QueryRow("SELECT data FROM saves WHERE game_id = ?", gameID).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load game: %w", err)
	}
	return []byte(text), true, nil
}

// ClearGame deletes the saved game, if any.
func (s *Store) ClearGame(gameID string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear saved game: %w", err)
	}
	return nil
}

// ReachLevel records that a level was reached. The stored value only grows.
func (s *Store) ReachLevel(gameID string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (game_id, highest_level, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
			highest_level = MAX(highest_level, excluded.highest_level),
			updated_at = excluded.updated_at`,
		gameID, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// CompleteGame increments the number of finished campaigns.
func (s *Store) CompleteGame(gameID string) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (game_id, games_completed, updated_at) VALUES (?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
			games_completed = games_completed + 1,
			updated_at = excluded.updated_at`,
		gameID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress returns the campaign progress. A game never played returns
// a zero Progress.
func (s *Store) LoadProgress(gameID string) (Progress, error) {
	p := Progress{GameID: gameID}
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT highest_level, games_completed, updated_at FROM progress WHERE game_id = ?",
		gameID,
	).Scan(&p.HighestLevel, &p.GamesCompleted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID        string
	Clears        int
	LevelsCleared int
	TotalSeconds  int64
	LastPlayed    time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level), COALESCE(SUM(seconds), 0), MAX(created_at)
		 FROM times WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Clears, &stats.LevelsCleared, &stats.TotalSeconds, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime converts a DATETIME column to time.Time.
// The driver returns either time.Time or a string depending on the value.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
