package models

import "time"

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusArchived  GoalStatus = "archived"
)

// Rank orders goal statuses for sorting; active goals sort first.
func (s GoalStatus) Rank() int {
	switch s {
	case GoalStatusActive:
		return 0
	case GoalStatusPaused:
		return 1
	case GoalStatusCompleted:
		return 2
	case GoalStatusArchived:
		return 3
	}
	return 4
}

// Goal is a long-running objective with a 0-100 progress value.
// Progress reaching 100 forces the status to completed; the engine's
// normalizer owns that rule, storage does not enforce it.
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      GoalStatus `json:"status"`
	Progress    int        `json:"progress"`
	TargetDate  string     `json:"target_date,omitempty"` // YYYY-MM-DD format
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
