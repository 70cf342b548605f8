// Package habits implements the recurring practice commands.
package habits

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/engine"
	"github.com/nwhitfield/daybook/internal/models"
)

type AddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `short:"d" help:"Habit description." default:""`
	Target      int    `short:"t" help:"Target completions per week (1-14)." default:"7"`
	Color       string `help:"Display color." default:""`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	habit := models.Habit{
		ID:            uuid.New().String(),
		Title:         c.Title,
		Description:   c.Description,
		TargetPerWeek: models.ClampTargetPerWeek(c.Target),
		Color:         c.Color,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	fmt.Printf("Added habit %q (%s)\n", habit.Title, habit.ID)
	ctx.AutoSnapshot()
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet.")
		return nil
	}

	logs, err := ctx.Store.GetAllHabitLogs()
	if err != nil {
		return fmt.Errorf("failed to load habit logs: %w", err)
	}

	now := time.Now()
	for _, habit := range engine.SortHabits(habits, logs, now) {
		stats := engine.HabitStatsFor(habit, logs, now)
		week := fmt.Sprintf("%d/%d this week", stats.ThisWeekCount, habit.TargetPerWeek)
		if stats.ThisWeekCount >= habit.TargetPerWeek {
			week = cli.HeaderStyle.Render(week)
		}
		fmt.Printf("%s  %s  %s  streak %d\n",
			cli.MutedStyle.Render(habit.ID), habit.Title, week, stats.CurrentStreak)
	}
	return nil
}

type ToggleCmd struct {
	ID   string `arg:"" help:"Habit id."`
	Date string `help:"Day to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabit(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load habit %s: %w", c.ID, err)
	}

	now := time.Now()
	day, ok := cli.ResolveDay(c.Date, now)
	if !ok {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}

	logs, err := ctx.Store.GetHabitLogs(habit.ID)
	if err != nil {
		return fmt.Errorf("failed to load habit logs: %w", err)
	}

	completed := !engine.CompletionDays(habit.ID, logs)[day]
	log := models.HabitLog{HabitID: habit.ID, Day: day, CreatedAt: now}
	if err := ctx.Store.SetHabitCompletion(log, completed); err != nil {
		return fmt.Errorf("failed to update habit log: %w", err)
	}

	if completed {
		fmt.Printf("Marked %q done on %s\n", habit.Title, day)
	} else {
		fmt.Printf("Cleared %q on %s\n", habit.Title, day)
	}
	ctx.AutoSnapshot()
	return nil
}

type LogCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabit(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load habit %s: %w", c.ID, err)
	}

	logs, err := ctx.Store.GetHabitLogs(habit.ID)
	if err != nil {
		return fmt.Errorf("failed to load habit logs: %w", err)
	}

	stats := engine.HabitStatsFor(habit, logs, time.Now())
	fmt.Printf("%s  %d/%d this week, streak %d\n",
		cli.HeaderStyle.Render(habit.Title), stats.ThisWeekCount, habit.TargetPerWeek, stats.CurrentStreak)
	for _, log := range logs {
		fmt.Printf("  %s\n", log.Day)
	}
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteHabit(c.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	fmt.Printf("Deleted habit %s\n", c.ID)
	ctx.AutoSnapshot()
	return nil
}
