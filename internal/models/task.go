package models

import (
	"time"

	"github.com/nwhitfield/daybook/internal/constants"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityUrgent TaskPriority = "urgent"
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Rank orders priorities for sorting; urgent sorts first.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	// Unknown priorities sort last
	return 4
}

// TimerState tracks time spent on a task. StartedAt is non-nil only while the
// timer is running; AccumulatedSeconds holds time folded in by prior runs.
// Use the engine's transition functions rather than mutating fields directly
// so the two fields stay consistent.
type TimerState struct {
	AccumulatedSeconds int64      `json:"accumulated_seconds"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
}

// Running reports whether the timer is currently counting.
func (t TimerState) Running() bool {
	return t.StartedAt != nil
}

// Task is a unit of work on the task board.
type Task struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Status          TaskStatus   `json:"status"`
	Priority        TaskPriority `json:"priority"`
	DueDate         string       `json:"due_date,omitempty"` // YYYY-MM-DD format
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	TimeEstimateMin int          `json:"time_estimate_min"`
	Timer           TimerState   `json:"timer"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// ClampTimeEstimate bounds a time estimate to the allowed range of minutes.
func ClampTimeEstimate(minutes int) int {
	if minutes < constants.MinTimeEstimateMin {
		return constants.MinTimeEstimateMin
	}
	if minutes > constants.MaxTimeEstimateMin {
		return constants.MaxTimeEstimateMin
	}
	return minutes
}
