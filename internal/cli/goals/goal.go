// Package goals implements the long-running objective commands.
package goals

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/engine"
	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/utils"
)

// Deadline warnings kick in a week out.
const nearDeadlineDays = 7

type AddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Description string `short:"d" help:"Goal description." default:""`
	Target      string `help:"Target date (YYYY-MM-DD)."`
}

func (c *AddCmd) Validate() error {
	if c.Target != "" {
		if _, ok := utils.ParseCalendarDay(c.Target); !ok {
			return fmt.Errorf("invalid target date %q, expected YYYY-MM-DD", c.Target)
		}
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	goal := models.Goal{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Description: c.Description,
		Status:      models.GoalStatusActive,
		TargetDate:  c.Target,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := ctx.Store.AddGoal(goal); err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}

	fmt.Printf("Added goal %q (%s)\n", goal.Title, goal.ID)
	ctx.AutoSnapshot()
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	if len(goals) == 0 {
		fmt.Println("No goals yet.")
		return nil
	}

	now := time.Now()
	for _, goal := range engine.SortGoals(goals) {
		title := goal.Title
		if goal.Status == models.GoalStatusCompleted {
			title = cli.DoneStyle.Render(title)
		} else if engine.IsGoalNearDeadline(goal, nearDeadlineDays, now) {
			title = cli.DueTodayStyle.Render(title)
		}
		line := fmt.Sprintf("%s  %s  %3d%%  %s", cli.MutedStyle.Render(goal.ID), title, goal.Progress, goal.Status)
		if goal.TargetDate != "" {
			line += "  by " + goal.TargetDate
		}
		fmt.Println(line)
	}
	return nil
}

type ProgressCmd struct {
	ID     string  `arg:"" help:"Goal id."`
	Value  float64 `arg:"" help:"Progress percentage (0-100)."`
	Status string  `help:"Status to set alongside progress (active|paused|completed|archived)." default:"active"`
}

func (c *ProgressCmd) Validate() error {
	return validStatus(c.Status)
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load goal %s: %w", c.ID, err)
	}

	goal = engine.ApplyProgress(goal, c.Value, models.GoalStatus(c.Status), time.Now())
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	fmt.Printf("%q is now %d%% (%s)\n", goal.Title, goal.Progress, goal.Status)
	ctx.AutoSnapshot()
	return nil
}

type AdjustCmd struct {
	ID    string `arg:"" help:"Goal id."`
	Delta int    `arg:"" help:"Progress change, e.g. 10 or -5."`
}

func (c *AdjustCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load goal %s: %w", c.ID, err)
	}

	goal = engine.AdjustProgress(goal, c.Delta, time.Now())
	if err := ctx.Store.UpdateGoal(goal); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	fmt.Printf("%q is now %d%% (%s)\n", goal.Title, goal.Progress, goal.Status)
	ctx.AutoSnapshot()
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Goal id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteGoal(c.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	fmt.Printf("Deleted goal %s\n", c.ID)
	ctx.AutoSnapshot()
	return nil
}

func validStatus(s string) error {
	switch models.GoalStatus(s) {
	case models.GoalStatusActive, models.GoalStatusPaused, models.GoalStatusCompleted, models.GoalStatusArchived:
		return nil
	}
	return fmt.Errorf("invalid status %q, expected active|paused|completed|archived", s)
}
