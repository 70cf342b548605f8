package engine

import (
	"sort"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/utils"
)

// IsOverdue reports whether a task's due date has passed. Done tasks and tasks
// without a parseable due date are never overdue.
func IsOverdue(task models.Task, today time.Time) bool {
	due, ok := utils.ParseCalendarDay(task.DueDate)
	if !ok || task.Status == models.TaskStatusDone {
		return false
	}
	return due.Before(utils.ToCalendarDay(today))
}

// IsDueToday reports whether a task is due on the given day and still open.
func IsDueToday(task models.Task, today time.Time) bool {
	due, ok := utils.ParseCalendarDay(task.DueDate)
	if !ok || task.Status == models.TaskStatusDone {
		return false
	}
	return utils.SameDay(due, today)
}

// CompareTasks orders tasks by priority, then due date ascending with dated
// tasks before undated ones, then most recently updated first. Returns
// negative when a sorts before b.
func CompareTasks(a, b models.Task) int {
	if d := a.Priority.Rank() - b.Priority.Rank(); d != 0 {
		return d
	}
	if d := compareDays(a.DueDate, b.DueDate); d != 0 {
		return d
	}
	return compareUpdatedDesc(a.UpdatedAt, b.UpdatedAt)
}

// SortTasks sorts a copy of tasks into board order.
func SortTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareTasks(out[i], out[j]) < 0
	})
	return out
}

// CompareGoals orders goals by status, then target date ascending with dated
// goals before undated ones, then most recently updated first.
func CompareGoals(a, b models.Goal) int {
	if d := a.Status.Rank() - b.Status.Rank(); d != 0 {
		return d
	}
	if d := compareDays(a.TargetDate, b.TargetDate); d != 0 {
		return d
	}
	return compareUpdatedDesc(a.UpdatedAt, b.UpdatedAt)
}

// SortGoals sorts a copy of goals into display order.
func SortGoals(goals []models.Goal) []models.Goal {
	out := make([]models.Goal, len(goals))
	copy(out, goals)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareGoals(out[i], out[j]) < 0
	})
	return out
}

// IsGoalNearDeadline reports whether an open goal's target date falls within
// thresholdDays of today (inclusive on both ends).
func IsGoalNearDeadline(goal models.Goal, thresholdDays int, today time.Time) bool {
	if goal.Status == models.GoalStatusCompleted || goal.Status == models.GoalStatusArchived {
		return false
	}
	target, ok := utils.ParseCalendarDay(goal.TargetDate)
	if !ok {
		return false
	}
	day := utils.ToCalendarDay(today)
	return !target.Before(day) && !target.After(utils.AddDays(day, thresholdDays))
}

// SortHabits orders habits so the ones furthest from their weekly target come
// first: ascending thisWeekCount/targetPerWeek ratio, then descending current
// streak, then most recently updated first. Derived counts come from logs.
func SortHabits(habits []models.Habit, logs []models.HabitLog, today time.Time) []models.Habit {
	stats := make(map[string]HabitStats, len(habits))
	for _, h := range habits {
		stats[h.ID] = HabitStatsFor(h, logs, today)
	}

	out := make([]models.Habit, len(habits))
	copy(out, habits)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		sa, sb := stats[a.ID], stats[b.ID]
		ra := weeklyRatio(a, sa)
		rb := weeklyRatio(b, sb)
		if ra != rb {
			return ra < rb
		}
		if sa.CurrentStreak != sb.CurrentStreak {
			return sa.CurrentStreak > sb.CurrentStreak
		}
		return compareUpdatedDesc(a.UpdatedAt, b.UpdatedAt) < 0
	})
	return out
}

func weeklyRatio(h models.Habit, s HabitStats) float64 {
	return float64(s.ThisWeekCount) / float64(models.ClampTargetPerWeek(h.TargetPerWeek))
}

// compareDays orders calendar-day strings ascending, with a parseable day
// sorting before an absent or malformed one.
func compareDays(a, b string) int {
	da, okA := utils.ParseCalendarDay(a)
	db, okB := utils.ParseCalendarDay(b)
	switch {
	case okA && okB:
		if da.Before(db) {
			return -1
		}
		if da.After(db) {
			return 1
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

func compareUpdatedDesc(a, b time.Time) int {
	if a.After(b) {
		return -1
	}
	if a.Before(b) {
		return 1
	}
	return 0
}
