package sqlite

import (
	"github.com/nwhitfield/daybook/internal/models"
)

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	return upsertHabit(s.db, habit)
}

func upsertHabit(e execer, habit models.Habit) error {
	_, err := e.Exec(`
		INSERT INTO habits (id, title, description, target_per_week, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			target_per_week = excluded.target_per_week,
			color = excluded.color,
			updated_at = excluded.updated_at`,
		habit.ID, habit.Title, habit.Description, models.ClampTargetPerWeek(habit.TargetPerWeek),
		habit.Color, formatTime(habit.CreatedAt), formatTime(habit.UpdatedAt))
	return err
}

const habitColumns = "id, title, description, target_per_week, color, created_at, updated_at"

func scanHabit(row interface{ Scan(...interface{}) error }) (models.Habit, error) {
	var h models.Habit
	var createdAt, updatedAt string

	err := row.Scan(&h.ID, &h.Title, &h.Description, &h.TargetPerWeek, &h.Color, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}
	h.CreatedAt = parseTime(createdAt)
	h.UpdatedAt = parseTime(updatedAt)
	return h, nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	return scanHabit(s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id))
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT " + habitColumns + " FROM habits ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) DeleteHabit(id string) error {
	// Logs go with the habit
	if _, err := s.db.Exec("DELETE FROM habit_logs WHERE habit_id = ?", id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	return err
}

// SetHabitCompletion marks or unmarks a day for a habit. Both directions are
// idempotent: marking an already marked day or clearing an absent one changes
// nothing.
func (s *Store) SetHabitCompletion(log models.HabitLog, completed bool) error {
	if !completed {
		_, err := s.db.Exec("DELETE FROM habit_logs WHERE habit_id = ? AND day = ?", log.HabitID, log.Day)
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO habit_logs (habit_id, day, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(habit_id, day) DO NOTHING`,
		log.HabitID, log.Day, formatTime(log.CreatedAt))
	return err
}

func (s *Store) GetHabitLogs(habitID string) ([]models.HabitLog, error) {
	return s.queryLogs("SELECT habit_id, day, created_at FROM habit_logs WHERE habit_id = ? ORDER BY day", habitID)
}

func (s *Store) GetAllHabitLogs() ([]models.HabitLog, error) {
	return s.queryLogs("SELECT habit_id, day, created_at FROM habit_logs ORDER BY day")
}

func (s *Store) queryLogs(query string, args ...interface{}) ([]models.HabitLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		var l models.HabitLog
		var createdAt string
		if err := rows.Scan(&l.HabitID, &l.Day, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt = parseTime(createdAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
