package engine

import (
	"time"

	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/utils"
)

// HabitStats bundles the derived per-habit values the board displays.
type HabitStats struct {
	ThisWeekCount int
	CurrentStreak int
}

// HabitStatsFor computes the rolling week count and current streak for one
// habit from the full log set.
func HabitStatsFor(habit models.Habit, logs []models.HabitLog, today time.Time) HabitStats {
	days := CompletionDays(habit.ID, logs)
	return HabitStats{
		ThisWeekCount: WeekCount(days, today),
		CurrentStreak: CurrentStreak(days, today),
	}
}

// CompletionDays collects the set of completed days for one habit, keyed by
// calendar-day string. Malformed day strings are dropped.
func CompletionDays(habitID string, logs []models.HabitLog) map[string]bool {
	days := make(map[string]bool)
	for _, l := range logs {
		if l.HabitID != habitID {
			continue
		}
		if _, ok := utils.ParseCalendarDay(l.Day); ok {
			days[l.Day] = true
		}
	}
	return days
}

// WeekCount counts completions inside the inclusive 7-day window ending today.
func WeekCount(days map[string]bool, today time.Time) int {
	count := 0
	day := utils.ToCalendarDay(today)
	for i := 0; i < 7; i++ {
		if days[utils.DayKey(utils.AddDays(day, -i))] {
			count++
		}
	}
	return count
}

// CurrentStreak walks backward from today counting consecutive completed
// days. A missing completion for today is forgiven (the day is still in
// progress) and the walk starts from yesterday instead; any earlier gap ends
// the streak.
func CurrentStreak(days map[string]bool, today time.Time) int {
	day := utils.ToCalendarDay(today)
	if !days[utils.DayKey(day)] {
		day = utils.AddDays(day, -1)
	}
	streak := 0
	for days[utils.DayKey(day)] {
		streak++
		day = utils.AddDays(day, -1)
	}
	return streak
}

// ToggleCompletion adds or removes a day from a habit's log set and returns
// the updated set. Toggling to a state the set is already in is a no-op, so
// repeated invocations are safe.
func ToggleCompletion(logs []models.HabitLog, habitID, day string, completed bool, now time.Time) []models.HabitLog {
	if _, ok := utils.ParseCalendarDay(day); !ok {
		return logs
	}

	out := make([]models.HabitLog, 0, len(logs)+1)
	present := false
	for _, l := range logs {
		if l.HabitID == habitID && l.Day == day {
			present = true
			if !completed {
				continue // remove
			}
		}
		out = append(out, l)
	}
	if completed && !present {
		out = append(out, models.HabitLog{HabitID: habitID, Day: day, CreatedAt: now})
	}
	return out
}
