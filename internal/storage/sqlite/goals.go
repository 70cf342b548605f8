package sqlite

import (
	"database/sql"

	"github.com/nwhitfield/daybook/internal/models"
)

func (s *Store) AddGoal(goal models.Goal) error {
	return s.UpdateGoal(goal)
}

func (s *Store) UpdateGoal(goal models.Goal) error {
	return upsertGoal(s.db, goal)
}

func upsertGoal(e execer, goal models.Goal) error {
	_, err := e.Exec(`
		INSERT INTO goals (id, title, description, status, progress, target_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			progress = excluded.progress,
			target_date = excluded.target_date,
			updated_at = excluded.updated_at`,
		goal.ID, goal.Title, goal.Description, string(goal.Status), goal.Progress,
		nullableString(goal.TargetDate), formatTime(goal.CreatedAt), formatTime(goal.UpdatedAt))
	return err
}

const goalColumns = "id, title, description, status, progress, target_date, created_at, updated_at"

func scanGoal(row interface{ Scan(...interface{}) error }) (models.Goal, error) {
	var g models.Goal
	var status, createdAt, updatedAt string
	var targetDate sql.NullString

	err := row.Scan(&g.ID, &g.Title, &g.Description, &status, &g.Progress, &targetDate, &createdAt, &updatedAt)
	if err != nil {
		return models.Goal{}, err
	}

	g.Status = models.GoalStatus(status)
	if targetDate.Valid {
		g.TargetDate = targetDate.String
	}
	g.CreatedAt = parseTime(createdAt)
	g.UpdatedAt = parseTime(updatedAt)
	return g, nil
}

func (s *Store) GetGoal(id string) (models.Goal, error) {
	return scanGoal(s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE id = ?", id))
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
	_, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	return err
}
