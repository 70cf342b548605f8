// Package sqlite implements the record store on a local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nwhitfield/daybook/internal/constants"
	"github.com/nwhitfield/daybook/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	date TEXT PRIMARY KEY,
	yesterday TEXT NOT NULL,
	today TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS pages (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL,
	priority TEXT NOT NULL,
	due_date TEXT,
	completed_at TEXT,
	time_estimate_min INTEGER NOT NULL DEFAULT 0,
	accumulated_seconds INTEGER NOT NULL DEFAULT 0,
	started_at TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL,
	progress INTEGER NOT NULL DEFAULT 0,
	target_date TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	target_per_week INTEGER NOT NULL DEFAULT 1,
	color TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS habit_logs (
	habit_id TEXT NOT NULL,
	day TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (habit_id, day)
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec("PRAGMA journal_mode = WAL; PRAGMA synchronous = NORMAL;"); err != nil {
		return fmt.Errorf("failed to set pragmas: %w", err)
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default settings on first run
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			ReminderHour: constants.DefaultReminderHour,
			Autosave:     constants.DefaultAutosave,
			Theme:        constants.DefaultTheme,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'daybook init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; running it on load picks up tables added
	// since the file was initialized.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "reminder_hour":
			if _, err := fmt.Sscanf(value, "%d", &settings.ReminderHour); err != nil {
				return models.Settings{}, fmt.Errorf("parsing reminder_hour: %w", err)
			}
		case "autosave":
			settings.Autosave = value == "true"
		case "theme":
			settings.Theme = value
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	pairs := map[string]string{
		"reminder_hour": strconv.Itoa(settings.ReminderHour),
		"autosave":      strconv.FormatBool(settings.Autosave),
		"theme":         settings.Theme,
	}
	for key, value := range pairs {
		_, err := s.db.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
		if err != nil {
			return err
		}
	}
	return nil
}

// parseTime reads an RFC3339 timestamp column, zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func scanNullableTime(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
