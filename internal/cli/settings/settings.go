// Package settings implements the application settings command.
package settings

import (
	"fmt"

	"github.com/nwhitfield/daybook/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	ReminderHour *int    `help:"Hour of day (0-23) for the journal reminder."`
	Autosave     *bool   `help:"Snapshot the database automatically after changes."`
	Theme        *string `help:"Display theme (system|light|dark)."`
}

func (c *SettingsCmd) Validate() error {
	if c.ReminderHour != nil && (*c.ReminderHour < 0 || *c.ReminderHour > 23) {
		return fmt.Errorf("reminder hour must be between 0 and 23")
	}
	if c.Theme != nil {
		switch *c.Theme {
		case "system", "light", "dark":
		default:
			return fmt.Errorf("invalid theme %q, expected system|light|dark", *c.Theme)
		}
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Reminder Hour: %d\n", settings.ReminderHour)
		fmt.Printf("  Autosave:      %v\n", settings.Autosave)
		fmt.Printf("  Theme:         %s\n", settings.Theme)
		return nil
	}

	updated := false
	if c.ReminderHour != nil {
		settings.ReminderHour = *c.ReminderHour
		updated = true
	}
	if c.Autosave != nil {
		settings.Autosave = *c.Autosave
		updated = true
	}
	if c.Theme != nil {
		settings.Theme = *c.Theme
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
