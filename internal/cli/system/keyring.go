package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nwhitfield/daybook/internal/cli"
	"github.com/nwhitfield/daybook/internal/keyring"
	"github.com/nwhitfield/daybook/internal/storage"
)

// KeyringSetCmd stores the database connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgresTarget(cmd.ConnectionString) &&
		!strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if storage.HasEmbeddedCredentials(cmd.ConnectionString) {
		// The keyring itself is encrypted, so inline passwords are allowed
		// here even though --config rejects them.
		fmt.Println("Note: connection string contains an embedded password; it will be stored in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("Connection string stored in OS keyring.")
	fmt.Println("daybook will use it automatically when --config is not set.")
	return nil
}

// KeyringGetCmd prints the stored connection string with the password masked.
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'daybook keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println(maskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes the stored connection string.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("Connection string deleted from OS keyring.")
	return nil
}

// KeyringStatusCmd reports keyring availability and whether credentials exist.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("OS keyring is not available on this system.")
		return errors.New("keyring unavailable")
	}

	fmt.Println("OS keyring is available.")
	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("A connection string is stored.")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("No connection string stored.")
	}
	return nil
}

func maskPassword(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "****")
			return u.String()
		}
	}
	return connStr
}
