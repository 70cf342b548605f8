package tasks

import (
	"fmt"
	"time"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/utils"
)

type EditCmd struct {
	ID          string  `arg:"" help:"Task id."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Priority    *string `help:"New priority (urgent|high|medium|low)."`
	Status      *string `help:"New status (todo|in_progress|done)."`
	Due         *string `help:"New due date (YYYY-MM-DD), empty string to clear."`
	Estimate    *int    `help:"New time estimate in minutes."`
}

func (c *EditCmd) Validate() error {
	if c.Priority != nil {
		if err := validPriority(*c.Priority); err != nil {
			return err
		}
	}
	if c.Status != nil {
		if err := validStatus(*c.Status); err != nil {
			return err
		}
	}
	if c.Due != nil && *c.Due != "" {
		if _, ok := utils.ParseCalendarDay(*c.Due); !ok {
			return fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", *c.Due)
		}
	}
	return nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", c.ID, err)
	}

	now := time.Now()
	updated := false
	if c.Title != nil {
		task.Title = *c.Title
		updated = true
	}
	if c.Description != nil {
		task.Description = *c.Description
		updated = true
	}
	if c.Priority != nil {
		task.Priority = models.TaskPriority(*c.Priority)
		updated = true
	}
	if c.Status != nil {
		task = applyStatus(task, models.TaskStatus(*c.Status), now)
		updated = true
	}
	if c.Due != nil {
		task.DueDate = *c.Due
		updated = true
	}
	if c.Estimate != nil {
		task.TimeEstimateMin = models.ClampTimeEstimate(*c.Estimate)
		updated = true
	}
	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	task.UpdatedAt = now
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Updated task %q\n", task.Title)
	ctx.AutoSnapshot()
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	fmt.Printf("Deleted task %s\n", c.ID)
	ctx.AutoSnapshot()
	return nil
}

type DoneCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load task %s: %w", c.ID, err)
	}

	now := time.Now()
	task = applyStatus(task, models.TaskStatusDone, now)
	task.UpdatedAt = now
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Completed %q (%s tracked)\n", task.Title, cli.TimerElapsed(task, now))
	ctx.AutoSnapshot()
	return nil
}
