// Package tasks implements the task board commands.
package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/utils"
)

type AddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Description string `short:"d" help:"Task description." default:""`
	Priority    string `short:"p" help:"Priority (urgent|high|medium|low)." default:"medium"`
	Due         string `help:"Due date (YYYY-MM-DD)."`
	Estimate    int    `short:"e" help:"Time estimate in minutes." default:"0"`
}

func (c *AddCmd) Validate() error {
	if err := validPriority(c.Priority); err != nil {
		return err
	}
	if c.Due != "" {
		if _, ok := utils.ParseCalendarDay(c.Due); !ok {
			return fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", c.Due)
		}
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	task := models.Task{
		ID:              uuid.New().String(),
		Title:           c.Title,
		Description:     c.Description,
		Status:          models.TaskStatusTodo,
		Priority:        models.TaskPriority(c.Priority),
		DueDate:         c.Due,
		TimeEstimateMin: models.ClampTimeEstimate(c.Estimate),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := ctx.Store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task %q (%s)\n", task.Title, task.ID)
	ctx.AutoSnapshot()
	return nil
}

func validPriority(s string) error {
	switch models.TaskPriority(s) {
	case models.PriorityUrgent, models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return nil
	}
	return fmt.Errorf("invalid priority %q, expected urgent|high|medium|low", s)
}

func validStatus(s string) error {
	switch models.TaskStatus(s) {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
		return nil
	}
	return fmt.Errorf("invalid status %q, expected todo|in_progress|done", s)
}
