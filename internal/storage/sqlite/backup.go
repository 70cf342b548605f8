package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/reconcile"
)

// execer is satisfied by both *sql.DB and *sql.Tx, so the keyed upserts serve
// direct CRUD and transactional backup application alike.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// Snapshot reads every record type in one pass for the engine and the
// backup reconciler.
func (s *Store) Snapshot() (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Entries, err = s.GetAllEntries(); err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot entries: %w", err)
	}
	if snap.Pages, err = s.GetAllPages(); err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot pages: %w", err)
	}
	if snap.Tasks, err = s.GetAllTasks(); err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot tasks: %w", err)
	}
	if snap.Goals, err = s.GetAllGoals(); err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot goals: %w", err)
	}
	if snap.Habits, err = s.GetAllHabits(); err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot habits: %w", err)
	}
	if snap.HabitLogs, err = s.GetAllHabitLogs(); err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot habit logs: %w", err)
	}
	return snap, nil
}

// ApplyBackup executes a reconciled operation set inside a single
// transaction. Either every operation lands or none do.
func (s *Store) ApplyBackup(ops reconcile.OperationSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := applyOps(tx, ops); err != nil {
		return err
	}

	return tx.Commit()
}

func applyOps(tx *sql.Tx, ops reconcile.OperationSet) error {
	wipes := []struct {
		flag  bool
		table string
	}{
		{ops.ReplaceEntries, "entries"},
		{ops.ReplacePages, "pages"},
		{ops.ReplaceTasks, "tasks"},
		{ops.ReplaceGoals, "goals"},
		{ops.ReplaceHabits, "habits"},
		{ops.ReplaceHabitLogs, "habit_logs"},
	}
	for _, w := range wipes {
		if !w.flag {
			continue
		}
		if _, err := tx.Exec("DELETE FROM " + w.table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", w.table, err)
		}
	}

	for _, e := range ops.Entries {
		// Unlike SaveEntry, imports carry an authoritative created_at
		_, err := tx.Exec(`
			INSERT INTO entries (date, yesterday, today, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET
				yesterday = excluded.yesterday,
				today = excluded.today,
				created_at = excluded.created_at`,
			e.Date, e.Yesterday, e.Today, formatTime(e.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to import entry %s: %w", e.Date, err)
		}
	}
	for _, p := range ops.Pages {
		if err := upsertPage(tx, p); err != nil {
			return fmt.Errorf("failed to import page %s: %w", p.ID, err)
		}
	}
	for _, t := range ops.Tasks {
		if err := upsertTask(tx, t); err != nil {
			return fmt.Errorf("failed to import task %s: %w", t.ID, err)
		}
	}
	for _, g := range ops.Goals {
		if err := upsertGoal(tx, g); err != nil {
			return fmt.Errorf("failed to import goal %s: %w", g.ID, err)
		}
	}
	for _, h := range ops.Habits {
		if err := upsertHabit(tx, h); err != nil {
			return fmt.Errorf("failed to import habit %s: %w", h.ID, err)
		}
	}
	for _, l := range ops.HabitLogs {
		_, err := tx.Exec(`
			INSERT INTO habit_logs (habit_id, day, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT(habit_id, day) DO UPDATE SET created_at = excluded.created_at`,
			l.HabitID, l.Day, formatTime(l.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to import habit log %s/%s: %w", l.HabitID, l.Day, err)
		}
	}

	return nil
}
