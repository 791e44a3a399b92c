// Package storage provides SQLite-based persistence for museum unlocks and
// campaign progress. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies. Scores are never stored.
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

// Store manages the SQLite database connection. It is safe for concurrent
// use by multiple sessions.
type Store struct {
	db *sql.DB
}

// UnlockEntry is a petroglyph entry a profile has unlocked in the museum.
type UnlockEntry struct {
	Profile    string
	CampaignID string
	LevelIndex int
	LevelID    string
	Title      string
	UnlockedAt time.Time
}

// Progress is the furthest point a profile reached in a campaign.
type Progress struct {
	Profile       string
	CampaignID    string
	FurthestLevel int  // Index of the next level to play
	Completed     bool // Every level has been won at least once
	UpdatedAt     time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// SQLite allows a single writer; SSH sessions share this pool.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS unlocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			campaign_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			level_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (profile, campaign_id, level_id)
		);
		CREATE INDEX IF NOT EXISTS idx_unlocks_profile ON unlocks(profile, campaign_id);

		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT NOT NULL,
			campaign_id TEXT NOT NULL,
			furthest_level INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile, campaign_id)
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

// Unlock records a museum entry. Unlocking the same level twice is a
// no-op; the returned bool reports whether the entry is new.
func (s *Store) Unlock(e UnlockEntry) (bool, error) {
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO unlocks (profile, campaign_id, level_index, level_id, title)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Profile, e.CampaignID, e.LevelIndex, e.LevelID, e.Title,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save unlock: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}

	return n > 0, nil
}

// Unlocked returns the entries a profile has unlocked in a campaign,
// ordered by level. An empty campaignID returns entries of all campaigns.
func (s *Store) Unlocked(profile, campaignID string) ([]UnlockEntry, error) {
	rows, err := s.db.Query(
		`SELECT profile, campaign_id, level_index, level_id, title, unlocked_at
		 FROM unlocks
		 WHERE profile = ? AND (? = '' OR campaign_id = ?)
		 ORDER BY campaign_id, level_index`,
		profile, campaignID, campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	var entries []UnlockEntry
	for rows.Next() {
		var e UnlockEntry
		var unlockedAt any
		if err := rows.Scan(&e.Profile, &e.CampaignID, &e.LevelIndex, &e.LevelID, &e.Title, &unlockedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UnlockedAt = parseTimestamp(unlockedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// IsUnlocked reports whether a profile has unlocked a level's entry.
func (s *Store) IsUnlocked(profile, campaignID, levelID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM unlocks WHERE profile = ? AND campaign_id = ? AND level_id = ?`,
		profile, campaignID, levelID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query unlock: %w", err)
	}
	return n > 0, nil
}

// RecordProgress raises the furthest level of a profile in a campaign.
// Lower values than the stored one are ignored.
func (s *Store) RecordProgress(profile, campaignID string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (profile, campaign_id, furthest_level)
		 VALUES (?, ?, ?)
		 ON CONFLICT (profile, campaign_id) DO UPDATE SET
		   furthest_level = MAX(furthest_level, excluded.furthest_level),
		   updated_at = CURRENT_TIMESTAMP`,
		profile, campaignID, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record progress: %w", err)
	}
	return nil
}

// MarkCompleted flags a campaign as won by a profile.
func (s *Store) MarkCompleted(profile, campaignID string) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (profile, campaign_id, completed)
		 VALUES (?, ?, 1)
		 ON CONFLICT (profile, campaign_id) DO UPDATE SET
		   completed = 1,
		   updated_at = CURRENT_TIMESTAMP`,
		profile, campaignID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot mark completed: %w", err)
	}
	return nil
}

// Progress returns the stored progress. A profile that never played the
// campaign gets a zero Progress and no error.
func (s *Store) Progress(profile, campaignID string) (Progress, error) {
	p := Progress{Profile: profile, CampaignID: campaignID}
	var completed int
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT furthest_level, completed, updated_at
		 FROM progress
		 WHERE profile = ? AND campaign_id = ?`,
		profile, campaignID,
	).Scan(&p.FurthestLevel, &completed, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("storage: cannot query progress: %w", err)
	}

	p.Completed = completed != 0
	p.UpdatedAt = parseTimestamp(updatedAt)
	return p, nil
}

// ClearProfile deletes every unlock and progress row of a profile.
func (s *Store) ClearProfile(profile string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM unlocks WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot clear unlocks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM progress WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTimestamp handles the driver returning either time.Time or string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
