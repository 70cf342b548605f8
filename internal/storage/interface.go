package storage

import (
	"net/url"
	"strings"

	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/reconcile"
)

// Provider is the record store the engine's callers read snapshots from and
// persist engine-computed state to. Implementations are keyed as the data
// model describes: journal entries by date, habit logs by (habit, day),
// everything else by id.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Journal entries
	SaveEntry(models.JournalEntry) error
	GetEntry(date string) (models.JournalEntry, error)
	GetAllEntries() ([]models.JournalEntry, error)
	DeleteEntry(date string) error

	// Pages
	AddPage(models.Page) error
	GetPage(id string) (models.Page, error)
	GetAllPages() ([]models.Page, error)
	UpdatePage(models.Page) error
	DeletePage(id string) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetAllGoals() ([]models.Goal, error)
	UpdateGoal(models.Goal) error
	DeleteGoal(id string) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Habit completion logs
	SetHabitCompletion(log models.HabitLog, completed bool) error
	GetHabitLogs(habitID string) ([]models.HabitLog, error)
	GetAllHabitLogs() ([]models.HabitLog, error)

	// Snapshot reads every record type for the engine and the reconciler.
	Snapshot() (models.Snapshot, error)
	// ApplyBackup executes a reconciled operation set in one transaction;
	// partial application is never a valid outcome.
	ApplyBackup(reconcile.OperationSet) error

	// Utils
	GetConfigPath() string
}

// IsPostgresTarget reports whether a config argument selects the PostgreSQL
// backend rather than a SQLite file path.
func IsPostgresTarget(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Those are rejected; credentials belong in the OS keyring
// or the environment.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
