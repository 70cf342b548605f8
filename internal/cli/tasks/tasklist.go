package tasks

import (
	"fmt"
	"time"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/engine"
	"github.com/nwhitfield/daybook/internal/models"
)

type ListCmd struct {
	All bool `short:"a" help:"Include completed tasks."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	now := time.Now()
	tasks = engine.SortTasks(tasks)

	shown := 0
	for _, task := range tasks {
		if task.Status == models.TaskStatusDone && !c.All {
			continue
		}
		fmt.Println(renderTask(task, now))
		shown++
	}
	if shown == 0 {
		fmt.Println("No open tasks. Use --all to include completed ones.")
	}
	return nil
}

func renderTask(task models.Task, now time.Time) string {
	title := task.Title
	marker := " "
	switch {
	case task.Status == models.TaskStatusDone:
		title = cli.DoneStyle.Render(title)
		marker = "x"
	case engine.IsOverdue(task, now):
		title = cli.OverdueStyle.Render(title)
		marker = "!"
	case engine.IsDueToday(task, now):
		title = cli.DueTodayStyle.Render(title)
		marker = "*"
	}

	line := fmt.Sprintf("[%s] %s  %s  %s", marker, cli.MutedStyle.Render(task.ID), title, task.Priority)
	if task.DueDate != "" {
		line += "  due " + task.DueDate
	}
	if task.Timer.AccumulatedSeconds > 0 || task.Timer.Running() {
		line += "  " + cli.TimerElapsed(task, now)
		if task.Timer.Running() {
			line += " (running)"
		}
	}
	return line
}
