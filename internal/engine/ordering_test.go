package engine

import (
	"testing"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
)

var boardToday = time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{
			name: "past due and open",
			task: models.Task{Status: models.TaskStatusTodo, DueDate: "2024-06-09"},
			want: true,
		},
		{
			name: "due today is not overdue",
			task: models.Task{Status: models.TaskStatusTodo, DueDate: "2024-06-10"},
			want: false,
		},
		{
			name: "done tasks are never overdue",
			task: models.Task{Status: models.TaskStatusDone, DueDate: "2024-06-01"},
			want: false,
		},
		{
			name: "no due date",
			task: models.Task{Status: models.TaskStatusTodo},
			want: false,
		},
		{
			name: "malformed due date treated as absent",
			task: models.Task{Status: models.TaskStatusTodo, DueDate: "soon"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.task, boardToday); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDueToday(t *testing.T) {
	task := models.Task{Status: models.TaskStatusInProgress, DueDate: "2024-06-10"}
	if !IsDueToday(task, boardToday) {
		t.Error("IsDueToday() = false for task due today")
	}
	task.Status = models.TaskStatusDone
	if IsDueToday(task, boardToday) {
		t.Error("IsDueToday() = true for done task")
	}
}

func TestSortTasks(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	a := models.Task{ID: "a", Priority: models.PriorityUrgent, DueDate: "2024-06-10", UpdatedAt: base}
	b := models.Task{ID: "b", Priority: models.PriorityHigh, DueDate: "2024-06-10", UpdatedAt: base}
	c := models.Task{ID: "c", Priority: models.PriorityUrgent, UpdatedAt: base}
	d := models.Task{ID: "d", Priority: models.PriorityUrgent, DueDate: "2024-06-12", UpdatedAt: base}
	e := models.Task{ID: "e", Priority: models.PriorityUrgent, DueDate: "2024-06-12", UpdatedAt: base.Add(time.Hour)}

	got := SortTasks([]models.Task{c, b, e, d, a})
	wantOrder := []string{"a", "e", "d", "c", "b"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d = %q, want %q (full order %v)", i, got[i].ID, id, ids(got))
		}
	}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func TestSortGoals(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	active := models.Goal{ID: "active", Status: models.GoalStatusActive, UpdatedAt: base}
	activeDated := models.Goal{ID: "dated", Status: models.GoalStatusActive, TargetDate: "2024-07-01", UpdatedAt: base}
	paused := models.Goal{ID: "paused", Status: models.GoalStatusPaused, UpdatedAt: base}
	archived := models.Goal{ID: "archived", Status: models.GoalStatusArchived, UpdatedAt: base}

	got := SortGoals([]models.Goal{archived, active, paused, activeDated})
	wantOrder := []string{"dated", "active", "paused", "archived"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestIsGoalNearDeadline(t *testing.T) {
	tests := []struct {
		name string
		goal models.Goal
		want bool
	}{
		{
			name: "inside window",
			goal: models.Goal{Status: models.GoalStatusActive, TargetDate: "2024-06-13"},
			want: true,
		},
		{
			name: "target today",
			goal: models.Goal{Status: models.GoalStatusActive, TargetDate: "2024-06-10"},
			want: true,
		},
		{
			name: "boundary of window",
			goal: models.Goal{Status: models.GoalStatusActive, TargetDate: "2024-06-17"},
			want: true,
		},
		{
			name: "past target",
			goal: models.Goal{Status: models.GoalStatusActive, TargetDate: "2024-06-09"},
			want: false,
		},
		{
			name: "beyond window",
			goal: models.Goal{Status: models.GoalStatusActive, TargetDate: "2024-06-18"},
			want: false,
		},
		{
			name: "completed goal ignored",
			goal: models.Goal{Status: models.GoalStatusCompleted, TargetDate: "2024-06-12"},
			want: false,
		},
		{
			name: "no target date",
			goal: models.Goal{Status: models.GoalStatusActive},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGoalNearDeadline(tt.goal, 7, boardToday); got != tt.want {
				t.Errorf("IsGoalNearDeadline() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortHabits(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	behind := models.Habit{ID: "behind", TargetPerWeek: 7, UpdatedAt: base}
	onTrack := models.Habit{ID: "on-track", TargetPerWeek: 2, UpdatedAt: base}
	logs := []models.HabitLog{
		{HabitID: "behind", Day: "2024-06-09"},
		{HabitID: "on-track", Day: "2024-06-08"},
		{HabitID: "on-track", Day: "2024-06-09"},
	}

	got := SortHabits([]models.Habit{onTrack, behind}, logs, boardToday)
	if got[0].ID != "behind" || got[1].ID != "on-track" {
		t.Errorf("habits sorted %q, %q; want behind first", got[0].ID, got[1].ID)
	}
}
