package cli

import (
	"time"

	"github.com/nwhitfield/daybook/internal/backup"
	"github.com/nwhitfield/daybook/internal/engine"
	"github.com/nwhitfield/daybook/internal/logger"
	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/storage"
	"github.com/nwhitfield/daybook/internal/utils"
)

// Context carries the shared state every command runs against.
type Context struct {
	Store storage.Provider
}

// AutoSnapshot creates a file-level snapshot after a mutating command when the
// autosave setting is on. Failures are logged, never surfaced; a missed
// snapshot should not interrupt the user's workflow.
func (c *Context) AutoSnapshot() {
	path := c.Store.GetConfigPath()
	if storage.IsPostgresTarget(path) {
		// File snapshots only apply to the SQLite backend
		return
	}
	settings, err := c.Store.GetSettings()
	if err != nil || !settings.Autosave {
		return
	}
	if _, err := backup.NewManager(path).CreateSnapshot(); err != nil {
		logger.Warn("Automatic snapshot failed", "error", err)
	}
}

// ResolveDay parses a --date style argument, defaulting to today when empty.
// The zero value of the bool result means the argument was malformed.
func ResolveDay(arg string, now time.Time) (string, bool) {
	if arg == "" {
		return utils.DayKey(now), true
	}
	if _, ok := utils.ParseCalendarDay(arg); !ok {
		return "", false
	}
	return arg, true
}

// TimerElapsed formats a task's elapsed timer seconds for display.
func TimerElapsed(task models.Task, now time.Time) string {
	return utils.FormatDuration(engine.Elapsed(task, now))
}
