package engine

import (
	"testing"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
)

var habitToday = time.Date(2024, 6, 10, 20, 0, 0, 0, time.Local)

func daySet(days ...string) map[string]bool {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

func TestWeekCount(t *testing.T) {
	tests := []struct {
		name string
		days map[string]bool
		want int
	}{
		{
			name: "empty",
			days: daySet(),
			want: 0,
		},
		{
			name: "window is inclusive on both ends",
			days: daySet("2024-06-04", "2024-06-10"),
			want: 2,
		},
		{
			name: "day before the window is excluded",
			days: daySet("2024-06-03", "2024-06-07"),
			want: 1,
		},
		{
			name: "future days are excluded",
			days: daySet("2024-06-11", "2024-06-09"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekCount(tt.days, habitToday); got != tt.want {
				t.Errorf("WeekCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name string
		days map[string]bool
		want int
	}{
		{
			name: "no completions",
			days: daySet(),
			want: 0,
		},
		{
			name: "today not done yet is forgiven",
			days: daySet("2024-06-08", "2024-06-09"),
			want: 2,
		},
		{
			name: "gap before the run does not extend it",
			days: daySet("2024-06-06", "2024-06-08", "2024-06-09"),
			want: 2,
		},
		{
			name: "today done counts",
			days: daySet("2024-06-09", "2024-06-10"),
			want: 2,
		},
		{
			name: "only forgiveness for today, not yesterday",
			days: daySet("2024-06-07", "2024-06-08"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.days, habitToday); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToggleCompletion(t *testing.T) {
	logs := []models.HabitLog{{HabitID: "h1", Day: "2024-06-09"}}

	t.Run("adding a day", func(t *testing.T) {
		got := ToggleCompletion(logs, "h1", "2024-06-10", true, habitToday)
		if len(got) != 2 {
			t.Fatalf("log count = %d, want 2", len(got))
		}
	})

	t.Run("adding an existing day is a no-op", func(t *testing.T) {
		got := ToggleCompletion(logs, "h1", "2024-06-09", true, habitToday)
		if len(got) != 1 {
			t.Fatalf("log count = %d, want 1", len(got))
		}
	})

	t.Run("removing a day", func(t *testing.T) {
		got := ToggleCompletion(logs, "h1", "2024-06-09", false, habitToday)
		if len(got) != 0 {
			t.Fatalf("log count = %d, want 0", len(got))
		}
	})

	t.Run("removing an absent day is a no-op", func(t *testing.T) {
		got := ToggleCompletion(logs, "h1", "2024-06-01", false, habitToday)
		if len(got) != 1 {
			t.Fatalf("log count = %d, want 1", len(got))
		}
	})

	t.Run("other habits are untouched", func(t *testing.T) {
		got := ToggleCompletion(logs, "h2", "2024-06-09", false, habitToday)
		if len(got) != 1 {
			t.Fatalf("log count = %d, want 1", len(got))
		}
	})

	t.Run("malformed day is ignored", func(t *testing.T) {
		got := ToggleCompletion(logs, "h1", "junk", true, habitToday)
		if len(got) != 1 {
			t.Fatalf("log count = %d, want 1", len(got))
		}
	})
}

func TestHabitStatsFor(t *testing.T) {
	habit := models.Habit{ID: "h1", TargetPerWeek: 3}
	logs := []models.HabitLog{
		{HabitID: "h1", Day: "2024-06-08"},
		{HabitID: "h1", Day: "2024-06-09"},
		{HabitID: "other", Day: "2024-06-10"},
	}

	stats := HabitStatsFor(habit, logs, habitToday)
	if stats.ThisWeekCount != 2 {
		t.Errorf("ThisWeekCount = %d, want 2", stats.ThisWeekCount)
	}
	if stats.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", stats.CurrentStreak)
	}
}
