// Package backups implements the JSON export/import commands and the
// file-level snapshot commands.
package backups

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/nwhitfield/daybook/internal/backup"
	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/constants"
	"github.com/nwhitfield/daybook/internal/reconcile"
	"github.com/nwhitfield/daybook/internal/storage"
)

type ExportCmd struct {
	Output string `short:"o" help:"File to write the backup to. Defaults to stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}

	data, err := reconcile.ExportPayload(snap)
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if c.Output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	fmt.Printf("Exported %d entries, %d pages, %d tasks, %d goals, %d habits to %s\n",
		len(snap.Entries), len(snap.Pages), len(snap.Tasks), len(snap.Goals), len(snap.Habits), c.Output)
	return nil
}

type ImportCmd struct {
	File    string `arg:"" help:"Backup file to import."`
	Replace bool   `help:"Replace existing records of each imported type instead of merging."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	payload, err := reconcile.ParsePayload(data)
	if err != nil {
		return err
	}

	snap, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read current records: %w", err)
	}

	ops, err := reconcile.Reconcile(payload, snap, c.Replace, time.Now())
	if err != nil {
		return err
	}
	if ops.Empty() {
		fmt.Println("Backup contains no records to import.")
		return nil
	}

	if c.Replace && !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Replace existing records?").
					Description("Every record type present in the backup will be wiped and rewritten from it. Merging (without --replace) keeps records the backup does not mention.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("confirmation form error: %w", err)
		}
		if !confirmed {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	if err := ctx.Store.ApplyBackup(ops); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	mode := "merged"
	if c.Replace {
		mode = "replaced"
	}
	fmt.Printf("Import complete (%s): %d entries, %d pages, %d tasks, %d goals, %d habits, %d habit logs\n",
		mode, len(ops.Entries), len(ops.Pages), len(ops.Tasks), len(ops.Goals), len(ops.Habits), len(ops.HabitLogs))
	ctx.AutoSnapshot()
	return nil
}

type SnapshotCmd struct{}

func (c *SnapshotCmd) Run(ctx *cli.Context) error {
	if storage.IsPostgresTarget(ctx.Store.GetConfigPath()) {
		return fmt.Errorf("file snapshots are only supported for SQLite databases; use 'daybook backup export' instead")
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.CreateSnapshot()
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}

	fmt.Printf("Snapshot created: %s\n", filepath.Base(path))
	return nil
}

type SnapshotsCmd struct{}

func (c *SnapshotsCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots found.")
		fmt.Printf("Snapshots are stored in: %s\n", mgr.SnapshotDir())
		return nil
	}

	fmt.Printf("Available snapshots (%d total, keeping most recent %d):\n\n", len(snapshots), constants.MaxSnapshots)
	for _, s := range snapshots {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			s.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(s.Path), float64(s.Size)/1024.0)
	}
	fmt.Printf("\nSnapshot directory: %s\n", mgr.SnapshotDir())
	return nil
}

type RestoreCmd struct {
	Snapshot string `arg:"" help:"Path or filename of the snapshot to restore."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	if storage.IsPostgresTarget(ctx.Store.GetConfigPath()) {
		return fmt.Errorf("snapshot restore is only supported for SQLite databases")
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := resolveSnapshotPath(mgr, c.Snapshot)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Restore from snapshot?").
					Description(fmt.Sprintf("This replaces the current database with %s. The current database is snapshotted first.", filepath.Base(path))).
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("confirmation form error: %w", err)
		}
		if !confirmed {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}
	if err := mgr.RestoreSnapshot(path); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Printf("Restored database from %s\n", filepath.Base(path))
	return nil
}

// resolveSnapshotPath accepts an absolute path, a path relative to the current
// directory, or a bare filename inside the snapshot directory.
func resolveSnapshotPath(mgr *backup.Manager, arg string) (string, error) {
	if filepath.IsAbs(arg) {
		if _, err := os.Stat(arg); os.IsNotExist(err) {
			return "", fmt.Errorf("snapshot not found: %s", arg)
		}
		return arg, nil
	}
	if _, err := os.Stat(arg); err == nil {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", fmt.Errorf("failed to resolve snapshot path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(mgr.SnapshotDir(), arg)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("snapshot not found: tried current directory and %s", mgr.SnapshotDir())
}
