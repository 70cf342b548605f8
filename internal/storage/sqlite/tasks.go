package sqlite

import (
	"database/sql"

	"github.com/nwhitfield/daybook/internal/models"
)

func (s *Store) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func (s *Store) UpdateTask(task models.Task) error {
	return upsertTask(s.db, task)
}

func upsertTask(e execer, task models.Task) error {
	var startedAt interface{}
	if task.Timer.StartedAt != nil {
		startedAt = formatTime(*task.Timer.StartedAt)
	}
	_, err := e.Exec(`
		INSERT INTO tasks (id, title, description, status, priority, due_date, completed_at,
			time_estimate_min, accumulated_seconds, started_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
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
		models.ClampTimeEstimate(task.TimeEstimateMin), task.Timer.AccumulatedSeconds, startedAt,
		formatTime(task.CreatedAt), formatTime(task.UpdatedAt))
	return err
}

const taskColumns = `id, title, description, status, priority, due_date, completed_at,
	time_estimate_min, accumulated_seconds, started_at, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }) (models.Task, error) {
	var t models.Task
	var status, priority, createdAt, updatedAt string
	var dueDate, completedAt, startedAt sql.NullString

	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &dueDate, &completedAt,
		&t.TimeEstimateMin, &t.Timer.AccumulatedSeconds, &startedAt, &createdAt, &updatedAt)
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
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return t, nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	return scanTask(s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
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
	_, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	return err
}
