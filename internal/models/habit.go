package models

import (
	"time"

	"github.com/nwhitfield/daybook/internal/constants"
)

// Habit is a recurring practice with a weekly completion target.
type Habit struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TargetPerWeek int       `json:"target_per_week"`
	Color         string    `json:"color"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HabitLog records a single day on which a habit was marked done.
// A (habit, day) pair appears at most once.
type HabitLog struct {
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
}

// ClampTargetPerWeek bounds a weekly target to the allowed range.
func ClampTargetPerWeek(target int) int {
	if target < constants.MinTargetPerWeek {
		return constants.MinTargetPerWeek
	}
	if target > constants.MaxTargetPerWeek {
		return constants.MaxTargetPerWeek
	}
	return target
}
