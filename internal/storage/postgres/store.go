// Package postgres implements the record store on PostgreSQL via lib/pq.
// Connection strings must not embed credentials; they come from the OS
// keyring or the environment instead.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/nwhitfield/daybook/internal/constants"
	"github.com/nwhitfield/daybook/internal/logger"
	"github.com/nwhitfield/daybook/internal/models"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	date TEXT PRIMARY KEY,
	yesterday TEXT NOT NULL,
	today TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS pages (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL,
	priority TEXT NOT NULL,
	due_date TEXT,
	completed_at TIMESTAMPTZ,
	time_estimate_min INTEGER NOT NULL DEFAULT 0,
	accumulated_seconds BIGINT NOT NULL DEFAULT 0,
	started_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL,
	progress INTEGER NOT NULL DEFAULT 0,
	target_date TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	target_per_week INTEGER NOT NULL DEFAULT 1,
	color TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS habit_logs (
	habit_id TEXT NOT NULL,
	day TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (habit_id, day)
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	s := &Store{connStr: connStr}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath pins the connection to the application's schema unless the
// caller already set one.
func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	// DSN format: space-separated key=value pairs
	for _, part := range strings.Fields(s.connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "search_path") {
			return
		}
	}
	s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

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
	if err := s.open(); err != nil {
		return err
	}
	// Tables may lag behind the binary; creation is idempotent
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// GetConfigPath returns the connection string with any user info stripped,
// suitable for logs and error messages.
func (s *Store) GetConfigPath() string {
	if u, err := url.Parse(s.connStr); err == nil && u.Scheme != "" {
		u.User = nil
		return u.String()
	}
	return s.connStr
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func scanNullableTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
