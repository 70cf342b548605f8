package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/nwhitfield/daybook/internal/models"
	"github.com/nwhitfield/daybook/internal/utils"
)

// WeeklySummary reports word analytics over the trailing 7-day window.
type WeeklySummary struct {
	TotalWords   int
	EntryDays    int
	AvgPerDay    float64
	PeakDay      string // YYYY-MM-DD, empty when no entries in the window
	PeakDayWords int
}

// WordCount counts whitespace-separated words across both entry texts.
func WordCount(entry models.JournalEntry) int {
	return len(strings.Fields(entry.Yesterday)) + len(strings.Fields(entry.Today))
}

// JournalStreak counts consecutive journaled days ending at today. Today
// itself is forgiven when no entry exists yet; the walk then starts from
// yesterday. The first missing day before that ends the streak.
func JournalStreak(entries []models.JournalEntry, today time.Time) int {
	return CurrentStreak(entryDays(entries), today)
}

// LongestJournalStreak scans all entries in date order and returns the
// longest run of consecutive calendar days ever journaled.
func LongestJournalStreak(entries []models.JournalEntry) int {
	var days []time.Time
	for _, e := range entries {
		if d, ok := utils.ParseCalendarDay(e.Date); ok {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		switch {
		case utils.SameDay(days[i], days[i-1]):
			continue
		case utils.SameDay(days[i], utils.AddDays(days[i-1], 1)):
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// WeeklyJournalSummary summarizes words written in the inclusive window
// [today-6, today].
func WeeklyJournalSummary(entries []models.JournalEntry, today time.Time) WeeklySummary {
	day := utils.ToCalendarDay(today)
	start := utils.AddDays(day, -6)

	var summary WeeklySummary
	for _, e := range entries {
		d, ok := utils.ParseCalendarDay(e.Date)
		if !ok || d.Before(start) || d.After(day) {
			continue
		}
		words := WordCount(e)
		summary.TotalWords += words
		summary.EntryDays++
		if words > summary.PeakDayWords || summary.PeakDay == "" {
			summary.PeakDay = e.Date
			summary.PeakDayWords = words
		}
	}
	if summary.EntryDays > 0 {
		summary.AvgPerDay = float64(summary.TotalWords) / float64(summary.EntryDays)
	}
	return summary
}

// SearchEntries filters entries whose texts contain the query,
// case-insensitive, newest first. An empty query matches everything.
func SearchEntries(entries []models.JournalEntry, query string) []models.JournalEntry {
	q := strings.ToLower(query)
	var out []models.JournalEntry
	for _, e := range entries {
		if q == "" || strings.Contains(strings.ToLower(e.Yesterday), q) || strings.Contains(strings.ToLower(e.Today), q) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func entryDays(entries []models.JournalEntry) map[string]bool {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		if _, ok := utils.ParseCalendarDay(e.Date); ok {
			days[e.Date] = true
		}
	}
	return days
}
