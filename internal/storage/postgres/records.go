package postgres

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/nwhitfield/daybook/internal/models"
)

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
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
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveEntry inserts or updates the entry for its date. Edits keep the
// original created_at.
func (s *Store) SaveEntry(entry models.JournalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO entries (date, yesterday, today, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			yesterday = excluded.yesterday,
			today = excluded.today`,
		entry.Date, entry.Yesterday, entry.Today, entry.CreatedAt)
	return err
}

func (s *Store) GetEntry(date string) (models.JournalEntry, error) {
	var e models.JournalEntry
	err := s.db.QueryRow(
		"SELECT date, yesterday, today, created_at FROM entries WHERE date = $1", date).
		Scan(&e.Date, &e.Yesterday, &e.Today, &e.CreatedAt)
	return e, err
}

func (s *Store) GetAllEntries() ([]models.JournalEntry, error) {
	rows, err := s.db.Query("SELECT date, yesterday, today, created_at FROM entries ORDER BY date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.Date, &e.Yesterday, &e.Today, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteEntry(date string) error {
	_, err := s.db.Exec("DELETE FROM entries WHERE date = $1", date)
	return err
}

func (s *Store) AddPage(page models.Page) error {
	return s.UpdatePage(page)
}

func (s *Store) UpdatePage(page models.Page) error {
	return upsertPage(s.db, page)
}

func upsertPage(e execer, page models.Page) error {
	_, err := e.Exec(`
		INSERT INTO pages (id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at`,
		page.ID, page.Title, page.Content, page.CreatedAt, page.UpdatedAt)
	return err
}

func (s *Store) GetPage(id string) (models.Page, error) {
	var p models.Page
	err := s.db.QueryRow(
		"SELECT id, title, content, created_at, updated_at FROM pages WHERE id = $1", id).
		Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) GetAllPages() ([]models.Page, error) {
	rows, err := s.db.Query("SELECT id, title, content, created_at, updated_at FROM pages ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var p models.Page
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *Store) DeletePage(id string) error {
	_, err := s.db.Exec("DELETE FROM pages WHERE id = $1", id)
	return err
}

func (s *Store) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func (s *Store) UpdateTask(task models.Task) error {
	return upsertTask(s.db, task)
}

func upsertTask(e execer, task models.Task) error {
	_, err := e.Exec(`
		INSERT INTO tasks (id, title, description, status, priority, due_date, completed_at,
			time_estimate_min, accumulated_seconds, started_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			priority = excluded.priority,
			due_date = excluded.due_date,
			completed_at = excluded.completed_at,
			time_estimate_min = excluded.time_estimate_min,
			accumulated_seconds = excluded.accumulated_seconds,
			started_at = excluded.started_at,
			updated_at = excluded.updated_at`,
		task.ID, task.Title, task.Description, string(task.Status), string(task.Priority),
		nullableString(task.DueDate), nullableTime(task.CompletedAt),
		models.ClampTimeEstimate(task.TimeEstimateMin), task.Timer.AccumulatedSeconds,
		nullableTime(task.Timer.StartedAt), task.CreatedAt, task.UpdatedAt)
	return err
}

const taskColumns = `id, title, description, status, priority, due_date, completed_at,
	time_estimate_min, accumulated_seconds, started_at, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (models.Task, error) {
	var t models.Task
	var status, priority string
	var dueDate sql.NullString
	var completedAt, startedAt sql.NullTime

	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &dueDate, &completedAt,
		&t.TimeEstimateMin, &t.Timer.AccumulatedSeconds, &startedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}

	t.Status = models.TaskStatus(status)
	t.Priority = models.TaskPriority(priority)
	if dueDate.Valid {
		t.DueDate = dueDate.String
	}
	t.CompletedAt = scanNullableTime(completedAt)
	t.Timer.StartedAt = scanNullableTime(startedAt)
	return t, nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	return scanTask(s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = $1", id))
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query("SELECT " + taskColumns + " FROM tasks ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) DeleteTask(id string) error {
	_, err := s.db.Exec("DELETE FROM tasks WHERE id = $1", id)
	return err
}

func (s *Store) AddGoal(goal models.Goal) error {
	return s.UpdateGoal(goal)
}

func (s *Store) UpdateGoal(goal models.Goal) error {
	return upsertGoal(s.db, goal)
}

func upsertGoal(e execer, goal models.Goal) error {
	_, err := e.Exec(`
		INSERT INTO goals (id, title, description, status, progress, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			progress = excluded.progress,
			target_date = excluded.target_date,
			updated_at = excluded.updated_at`,
		goal.ID, goal.Title, goal.Description, string(goal.Status), goal.Progress,
		nullableString(goal.TargetDate), goal.CreatedAt, goal.UpdatedAt)
	return err
}

const goalColumns = "id, title, description, status, progress, target_date, created_at, updated_at"

func scanGoal(row interface{ Scan(...interface{}) error }) (models.Goal, error) {
	var g models.Goal
	var status string
	var targetDate sql.NullString

	err := row.Scan(&g.ID, &g.Title, &g.Description, &status, &g.Progress, &targetDate,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return models.Goal{}, err
	}

	g.Status = models.GoalStatus(status)
	if targetDate.Valid {
		g.TargetDate = targetDate.String
	}
	return g, nil
}

func (s *Store) GetGoal(id string) (models.Goal, error) {
	return scanGoal(s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE id = $1", id))
}

func (s *Store) GetAllGoals() ([]models.Goal, error) {
	rows, err := s.db.Query("SELECT " + goalColumns + " FROM goals ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) DeleteGoal(id string) error {
	_, err := s.db.Exec("DELETE FROM goals WHERE id = $1", id)
	return err
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	return upsertHabit(s.db, habit)
}

func upsertHabit(e execer, habit models.Habit) error {
	_, err := e.Exec(`
		INSERT INTO habits (id, title, description, target_per_week, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			target_per_week = excluded.target_per_week,
			color = excluded.color,
			updated_at = excluded.updated_at`,
		habit.ID, habit.Title, habit.Description, models.ClampTargetPerWeek(habit.TargetPerWeek),
		habit.Color, habit.CreatedAt, habit.UpdatedAt)
	return err
}

const habitColumns = "id, title, description, target_per_week, color, created_at, updated_at"

func scanHabit(row interface{ Scan(...interface{}) error }) (models.Habit, error) {
	var h models.Habit
	err := row.Scan(&h.ID, &h.Title, &h.Description, &h.TargetPerWeek, &h.Color,
		&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	return scanHabit(s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = $1", id))
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
	if _, err := s.db.Exec("DELETE FROM habit_logs WHERE habit_id = $1", id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM habits WHERE id = $1", id)
	return err
}

// SetHabitCompletion marks or unmarks a day for a habit. Both directions are
// idempotent.
func (s *Store) SetHabitCompletion(log models.HabitLog, completed bool) error {
	if !completed {
		_, err := s.db.Exec("DELETE FROM habit_logs WHERE habit_id = $1 AND day = $2", log.HabitID, log.Day)
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO habit_logs (habit_id, day, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (habit_id, day) DO NOTHING`,
		log.HabitID, log.Day, log.CreatedAt)
	return err
}

func (s *Store) GetHabitLogs(habitID string) ([]models.HabitLog, error) {
	return s.queryLogs("SELECT habit_id, day, created_at FROM habit_logs WHERE habit_id = $1 ORDER BY day", habitID)
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
		if err := rows.Scan(&l.HabitID, &l.Day, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
