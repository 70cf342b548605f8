// Package system implements storage lifecycle and credential commands.
package system

import (
	"fmt"
	"os"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if storage.IsPostgresTarget(dbPath) {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized daybook storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
