package engine

import (
	"math"
	"time"

	"github.com/nwhitfield/daybook/internal/constants"
	"github.com/nwhitfield/daybook/internal/models"
)

// NormalizeProgress rounds to the nearest integer and clamps to [0, 100].
func NormalizeProgress(value float64) int {
	p := int(math.Round(value))
	if p < constants.MinProgress {
		return constants.MinProgress
	}
	if p > constants.MaxProgress {
		return constants.MaxProgress
	}
	return p
}

// ApplyProgress sets a goal's progress and status together. Full progress
// forces the status to completed no matter what was requested; otherwise the
// requested status is taken as-is.
func ApplyProgress(goal models.Goal, rawValue float64, requested models.GoalStatus, now time.Time) models.Goal {
	p := NormalizeProgress(rawValue)
	goal.Progress = p
	if p == constants.MaxProgress {
		goal.Status = models.GoalStatusCompleted
	} else {
		goal.Status = requested
	}
	goal.UpdatedAt = now
	return goal
}

// AdjustProgress is the quick +10/-10 path; it shifts current progress by
// delta and runs it through the same completion rule.
func AdjustProgress(goal models.Goal, delta int, now time.Time) models.Goal {
	return ApplyProgress(goal, float64(goal.Progress+delta), goal.Status, now)
}
