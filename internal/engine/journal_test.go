package engine

import (
	"testing"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
)

var journalToday = time.Date(2024, 6, 10, 21, 0, 0, 0, time.Local)

func entriesOn(days ...string) []models.JournalEntry {
	out := make([]models.JournalEntry, len(days))
	for i, d := range days {
		out[i] = models.JournalEntry{Date: d, Yesterday: "worked", Today: "more work"}
	}
	return out
}

func TestJournalStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.JournalEntry
		want    int
	}{
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
		{
			name:    "missing today is forgiven",
			entries: entriesOn("2024-06-08", "2024-06-09"),
			want:    2,
		},
		{
			name:    "entry today counts",
			entries: entriesOn("2024-06-09", "2024-06-10"),
			want:    2,
		},
		{
			name:    "gap breaks the streak",
			entries: entriesOn("2024-06-01", "2024-06-02", "2024-06-03", "2024-06-05"),
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JournalStreak(tt.entries, journalToday); got != tt.want {
				t.Errorf("JournalStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestJournalStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.JournalEntry
		want    int
	}{
		{
			name:    "empty",
			entries: nil,
			want:    0,
		},
		{
			name:    "single entry",
			entries: entriesOn("2024-06-01"),
			want:    1,
		},
		{
			name:    "run of three with a gap after",
			entries: entriesOn("2024-06-01", "2024-06-02", "2024-06-03", "2024-06-05"),
			want:    3,
		},
		{
			name:    "unsorted input",
			entries: entriesOn("2024-06-03", "2024-06-01", "2024-06-02"),
			want:    3,
		},
		{
			name:    "malformed dates are skipped",
			entries: entriesOn("2024-06-01", "bogus", "2024-06-02"),
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestJournalStreak(tt.entries); got != tt.want {
				t.Errorf("LongestJournalStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeeklyJournalSummary(t *testing.T) {
	entries := []models.JournalEntry{
		{Date: "2024-06-09", Yesterday: "fixed the parser", Today: "write tests"}, // 5 words
		{Date: "2024-06-05", Yesterday: "meetings", Today: ""},                    // 1 word
		{Date: "2024-06-01", Yesterday: "out of the window", Today: "ignored"},
	}

	got := WeeklyJournalSummary(entries, journalToday)
	if got.EntryDays != 2 {
		t.Errorf("EntryDays = %d, want 2", got.EntryDays)
	}
	if got.TotalWords != 6 {
		t.Errorf("TotalWords = %d, want 6", got.TotalWords)
	}
	if got.AvgPerDay != 3 {
		t.Errorf("AvgPerDay = %v, want 3", got.AvgPerDay)
	}
	if got.PeakDay != "2024-06-09" || got.PeakDayWords != 5 {
		t.Errorf("peak = %s (%d words), want 2024-06-09 (5 words)", got.PeakDay, got.PeakDayWords)
	}
}

func TestWeeklyJournalSummaryEmptyWindow(t *testing.T) {
	got := WeeklyJournalSummary(entriesOn("2024-05-01"), journalToday)
	if got.EntryDays != 0 || got.TotalWords != 0 || got.AvgPerDay != 0 || got.PeakDay != "" {
		t.Errorf("summary for empty window = %+v", got)
	}
}

func TestWordCount(t *testing.T) {
	entry := models.JournalEntry{Yesterday: "  two  words ", Today: "\tone\n"}
	if got := WordCount(entry); got != 3 {
		t.Errorf("WordCount() = %d, want 3", got)
	}
}

func TestSearchEntries(t *testing.T) {
	entries := []models.JournalEntry{
		{Date: "2024-06-01", Yesterday: "refactored the Store", Today: ""},
		{Date: "2024-06-02", Yesterday: "", Today: "store migrations"},
		{Date: "2024-06-03", Yesterday: "day off", Today: "rest"},
	}

	got := SearchEntries(entries, "store")
	if len(got) != 2 {
		t.Fatalf("match count = %d, want 2", len(got))
	}
	if got[0].Date != "2024-06-02" || got[1].Date != "2024-06-01" {
		t.Errorf("results not newest first: %s, %s", got[0].Date, got[1].Date)
	}
}
