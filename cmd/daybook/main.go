package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/cli/backups"
	"github.com/nwhitfield/daybook/internal/cli/goals"
	"github.com/nwhitfield/daybook/internal/cli/habits"
	"github.com/nwhitfield/daybook/internal/cli/journal"
	"github.com/nwhitfield/daybook/internal/cli/pages"
	"github.com/nwhitfield/daybook/internal/cli/settings"
	"github.com/nwhitfield/daybook/internal/cli/system"
	"github.com/nwhitfield/daybook/internal/cli/tasks"
	"github.com/nwhitfield/daybook/internal/constants"
	apperrors "github.com/nwhitfield/daybook/internal/errors"
	"github.com/nwhitfield/daybook/internal/keyring"
	"github.com/nwhitfield/daybook/internal/logger"
	"github.com/nwhitfield/daybook/internal/storage"
	"github.com/nwhitfield/daybook/internal/storage/postgres"
	"github.com/nwhitfield/daybook/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. PostgreSQL credentials must not be embedded; store them with 'daybook keyring set' instead." default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd `cmd:"" help:"Initialize daybook storage."`
	Journal struct {
		Add    journal.AddCmd    `cmd:"" help:"Write or update a day's entry." default:"withargs"`
		Show   journal.ShowCmd   `cmd:"" help:"Show one day's entry."`
		List   journal.ListCmd   `cmd:"" help:"List all entries."`
		Search journal.SearchCmd `cmd:"" help:"Search entries for text."`
		Stats  journal.StatsCmd  `cmd:"" help:"Show journaling streaks and weekly totals."`
	} `cmd:"" help:"Daily journal."`
	Page struct {
		Add    pages.AddCmd    `cmd:"" help:"Add a page."`
		List   pages.ListCmd   `cmd:"" help:"List pages." default:"1"`
		Show   pages.ShowCmd   `cmd:"" help:"Show a page."`
		Edit   pages.EditCmd   `cmd:"" help:"Edit a page."`
		Delete pages.DeleteCmd `cmd:"" help:"Delete a page."`
	} `cmd:"" help:"Freeform pages."`
	Task struct {
		Add    tasks.AddCmd    `cmd:"" help:"Add a task."`
		List   tasks.ListCmd   `cmd:"" help:"List tasks in working order." default:"1"`
		Edit   tasks.EditCmd   `cmd:"" help:"Edit a task."`
		Delete tasks.DeleteCmd `cmd:"" help:"Delete a task."`
		Done   tasks.DoneCmd   `cmd:"" help:"Mark a task completed."`
		Start  tasks.StartCmd  `cmd:"" help:"Start a task's timer."`
		Pause  tasks.PauseCmd  `cmd:"" help:"Pause a task's timer."`
		Reset  tasks.ResetCmd  `cmd:"" help:"Reset a task's timer."`
		Timer  tasks.TimerCmd  `cmd:"" help:"Show a task's timer."`
	} `cmd:"" help:"Task board."`
	Goal struct {
		Add      goals.AddCmd      `cmd:"" help:"Add a goal."`
		List     goals.ListCmd     `cmd:"" help:"List goals." default:"1"`
		Progress goals.ProgressCmd `cmd:"" help:"Set a goal's progress."`
		Adjust   goals.AdjustCmd   `cmd:"" help:"Adjust a goal's progress by a delta."`
		Delete   goals.DeleteCmd   `cmd:"" help:"Delete a goal."`
	} `cmd:"" help:"Long-running goals."`
	Habit struct {
		Add    habits.AddCmd    `cmd:"" help:"Add a habit."`
		List   habits.ListCmd   `cmd:"" help:"List habits with weekly progress." default:"1"`
		Toggle habits.ToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
		Log    habits.LogCmd    `cmd:"" help:"Show a habit's completion log."`
		Delete habits.DeleteCmd `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Recurring habits."`
	Settings settings.SettingsCmd `cmd:"" help:"View or change application settings."`
	Backup   struct {
		Export    backups.ExportCmd    `cmd:"" help:"Export all records as a JSON backup."`
		Import    backups.ImportCmd    `cmd:"" help:"Import a JSON backup (merge, or --replace)."`
		Snapshot  backups.SnapshotCmd  `cmd:"" help:"Create a file-level database snapshot."`
		Snapshots backups.SnapshotsCmd `cmd:"" help:"List file-level snapshots."`
		Restore   backups.RestoreCmd   `cmd:"" help:"Restore the database from a snapshot."`
	} `cmd:"" help:"Backups and snapshots."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage database credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal productivity tracker: journal, tasks, goals, habits"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	config := resolveConfig(CLI.Config)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if storage.IsPostgresTarget(config) {
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintln(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.")
			fmt.Fprintln(os.Stderr, "Store the full connection string with 'daybook keyring set' or use .pgpass / environment variables.")
			os.Exit(1)
		}
		store = postgres.New(config)
	} else {
		store = sqlite.NewStore(config)
	}

	appCtx := &cli.Context{Store: store}

	// Every command except init and the keyring group expects an existing store
	command := ctx.Command()
	if command != "init" && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// configDir is where logs and snapshots live; for the PostgreSQL backend it
// falls back to the default SQLite location.
func configDir(config string) string {
	if !storage.IsPostgresTarget(config) {
		return filepath.Dir(config)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", constants.AppName)
	}
	return "."
}

// resolveConfig expands a leading ~ and falls back to a keyring-stored
// connection string when the flag was left at its default.
func resolveConfig(config string) string {
	if config == constants.DefaultConfigPath {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			return connStr
		}
	}
	if strings.HasPrefix(config, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, config[2:])
		}
	}
	return config
}
