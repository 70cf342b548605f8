package postgres

import (
	"fmt"

	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/reconcile"
)

func (s *Store) Snapshot() (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Entries, err = s.GetAllEntries(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading entries: %w", err)
	}
	if snap.Pages, err = s.GetAllPages(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading pages: %w", err)
	}
	if snap.Tasks, err = s.GetAllTasks(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading tasks: %w", err)
	}
	if snap.Goals, err = s.GetAllGoals(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading goals: %w", err)
	}
	if snap.Habits, err = s.GetAllHabits(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading habits: %w", err)
	}
	if snap.HabitLogs, err = s.GetAllHabitLogs(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading habit logs: %w", err)
	}
	return snap, nil
}

// ApplyBackup applies a reconciled operation set in a single transaction, so a
// failed import leaves the store untouched.
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

func applyOps(e execer, ops reconcile.OperationSet) error {
	wipes := []struct {
		replace bool
		table   string
	}{
		{ops.ReplaceEntries, "entries"},
		{ops.ReplacePages, "pages"},
		{ops.ReplaceTasks, "tasks"},
		{ops.ReplaceGoals, "goals"},
		{ops.ReplaceHabits, "habits"},
		{ops.ReplaceHabitLogs, "habit_logs"},
	}
	for _, w := range wipes {
		if !w.replace {
			continue
		}
		if _, err := e.Exec("DELETE FROM " + w.table); err != nil {
			return fmt.Errorf("clearing %s: %w", w.table, err)
		}
	}

	// Unlike SaveEntry, imports carry an authoritative created_at.
	for _, entry := range ops.Entries {
		_, err := e.Exec(`
			INSERT INTO entries (date, yesterday, today, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (date) DO UPDATE SET
				yesterday = excluded.yesterday,
				today = excluded.today,
				created_at = excluded.created_at`,
			entry.Date, entry.Yesterday, entry.Today, entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("writing entry %s: %w", entry.Date, err)
		}
	}
	for _, page := range ops.Pages {
		if err := upsertPage(e, page); err != nil {
			return fmt.Errorf("writing page %s: %w", page.ID, err)
		}
	}
	for _, task := range ops.Tasks {
		if err := upsertTask(e, task); err != nil {
			return fmt.Errorf("writing task %s: %w", task.ID, err)
		}
	}
	for _, goal := range ops.Goals {
		if err := upsertGoal(e, goal); err != nil {
			return fmt.Errorf("writing goal %s: %w", goal.ID, err)
		}
	}
	for _, habit := range ops.Habits {
		if err := upsertHabit(e, habit); err != nil {
			return fmt.Errorf("writing habit %s: %w", habit.ID, err)
		}
	}
	for _, log := range ops.HabitLogs {
		_, err := e.Exec(`
			INSERT INTO habit_logs (habit_id, day, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (habit_id, day) DO UPDATE SET created_at = excluded.created_at`,
			log.HabitID, log.Day, log.CreatedAt)
		if err != nil {
			return fmt.Errorf("writing habit log %s/%s: %w", log.HabitID, log.Day, err)
		}
	}
	return nil
}
