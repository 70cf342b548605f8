// Package journal implements the daily reflection commands.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/engine"
	"github.com/nwhitfield/daybook/internal/models"
)

type AddCmd struct {
	Yesterday string `short:"y" help:"What happened yesterday." default:""`
	Today     string `short:"t" help:"Plan or reflection for today." default:""`
	Date      string `help:"Entry date (YYYY-MM-DD). Defaults to today."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	day, ok := cli.ResolveDay(c.Date, now)
	if !ok {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}

	entry := models.JournalEntry{
		Date:      day,
		Yesterday: c.Yesterday,
		Today:     c.Today,
		CreatedAt: now,
	}
	if err := ctx.Store.SaveEntry(entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	fmt.Printf("Saved entry for %s (%d words)\n", day, engine.WordCount(entry))
	ctx.AutoSnapshot()
	return nil
}

type ShowCmd struct {
	Date string `arg:"" optional:"" help:"Entry date (YYYY-MM-DD). Defaults to today."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	day, ok := cli.ResolveDay(c.Date, time.Now())
	if !ok {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}

	entry, err := ctx.Store.GetEntry(day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fmt.Printf("No entry for %s.\n", day)
			return nil
		}
		return fmt.Errorf("failed to load entry: %w", err)
	}

	printEntry(entry)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%s  %s\n", cli.HeaderStyle.Render(entry.Date), preview(entry.Today))
	}
	return nil
}

type SearchCmd struct {
	Query string `arg:"" help:"Text to search for in entries."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	matches := engine.SearchEntries(entries, c.Query)
	if len(matches) == 0 {
		fmt.Printf("No entries match %q.\n", c.Query)
		return nil
	}

	for _, entry := range matches {
		printEntry(entry)
		fmt.Println()
	}
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	now := time.Now()
	summary := engine.WeeklyJournalSummary(entries, now)

	fmt.Println(cli.HeaderStyle.Render("Journal"))
	fmt.Printf("  Entries:        %d\n", len(entries))
	fmt.Printf("  Current streak: %d days\n", engine.JournalStreak(entries, now))
	fmt.Printf("  Longest streak: %d days\n", engine.LongestJournalStreak(entries))
	fmt.Println(cli.HeaderStyle.Render("Last 7 days"))
	fmt.Printf("  Days written:   %d\n", summary.EntryDays)
	fmt.Printf("  Total words:    %d\n", summary.TotalWords)
	fmt.Printf("  Avg words/day:  %g\n", summary.AvgPerDay)
	if summary.PeakDay != "" {
		fmt.Printf("  Peak day:       %s (%d words)\n", summary.PeakDay, summary.PeakDayWords)
	}
	return nil
}

func printEntry(entry models.JournalEntry) {
	fmt.Println(cli.HeaderStyle.Render(entry.Date))
	if entry.Yesterday != "" {
		fmt.Printf("  Yesterday: %s\n", entry.Yesterday)
	}
	if entry.Today != "" {
		fmt.Printf("  Today:     %s\n", entry.Today)
	}
}

func preview(s string) string {
	const max = 60
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
