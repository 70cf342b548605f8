// Package engine computes derived view state from stored records and a
// caller-supplied wall-clock instant. Every function here is pure: the engine
// owns no clock, performs no I/O, and never mutates its inputs. Callers
// persist returned records through the storage provider.
package engine

import (
	"time"

	"github.com/nwhitfield/daybook/internal/models"
)

// StartTimer returns the task with its timer running, anchored at now.
// Starting a done task reopens it as in_progress first. Starting an already
// running timer is a no-op so duplicate invocations never reset the anchor.
func StartTimer(task models.Task, now time.Time) models.Task {
	if task.Status == models.TaskStatusDone {
		task.Status = models.TaskStatusInProgress
		task.CompletedAt = nil
	}
	if task.Timer.Running() {
		return task
	}
	started := now
	task.Timer.StartedAt = &started
	task.UpdatedAt = now
	return task
}

// PauseTimer folds the running interval into AccumulatedSeconds and stops the
// timer. Pausing an idle timer is a no-op.
func PauseTimer(task models.Task, now time.Time) models.Task {
	if !task.Timer.Running() {
		return task
	}
	task.Timer.AccumulatedSeconds += runningSeconds(task.Timer, now)
	task.Timer.StartedAt = nil
	task.UpdatedAt = now
	return task
}

// ResetTimer discards all tracked time, whatever state the timer is in.
func ResetTimer(task models.Task, now time.Time) models.Task {
	task.Timer = models.TimerState{}
	task.UpdatedAt = now
	return task
}

// Elapsed returns the total tracked seconds as of now. While the timer is
// running this is non-decreasing in now; it never goes negative even if now
// drifts behind the start anchor.
func Elapsed(task models.Task, now time.Time) int64 {
	return task.Timer.AccumulatedSeconds + runningSeconds(task.Timer, now)
}

func runningSeconds(timer models.TimerState, now time.Time) int64 {
	if timer.StartedAt == nil {
		return 0
	}
	secs := int64(now.Sub(*timer.StartedAt) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
