package tasks

import (
	"fmt"
	"time"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/engine"
	"github.com/nwhitfield/daybook/internal/models"
)

// applyStatus moves a task to the requested status, keeping the timer and
// completion timestamp consistent with it.
func applyStatus(task models.Task, status models.TaskStatus, now time.Time) models.Task {
	switch status {
	case models.TaskStatusDone:
		task = engine.PauseTimer(task, now)
		task.Status = models.TaskStatusDone
		completed := now
		task.CompletedAt = &completed
	default:
		task.Status = status
		task.CompletedAt = nil
	}
	return task
}

type StartCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", c.ID, err)
	}

	now := time.Now()
	task = engine.StartTimer(task, now)
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Timer running for %q (%s so far)\n", task.Title, cli.TimerElapsed(task, now))
	ctx.AutoSnapshot()
	return nil
}

type PauseCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *PauseCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", c.ID, err)
	}

	now := time.Now()
	task = engine.PauseTimer(task, now)
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Timer paused for %q at %s\n", task.Title, cli.TimerElapsed(task, now))
	ctx.AutoSnapshot()
	return nil
}

type ResetCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", c.ID, err)
	}

	task = engine.ResetTimer(task, time.Now())
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Timer reset for %q\n", task.Title)
	ctx.AutoSnapshot()
	return nil
}

type TimerCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TimerCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", c.ID, err)
	}

	now := time.Now()
	state := "paused"
	if task.Timer.Running() {
		state = "running"
	}
	fmt.Printf("%s  %s (%s)\n", cli.HeaderStyle.Render(task.Title), cli.TimerElapsed(task, now), state)
	if task.TimeEstimateMin > 0 {
		fmt.Printf("Estimate: %d min\n", task.TimeEstimateMin)
	}
	return nil
}
