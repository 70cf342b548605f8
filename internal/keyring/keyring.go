// Package keyring stores the PostgreSQL connection string in the OS keyring
// so credentials never live in config files or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/nwhitfield/daybook/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString retrieves the database connection string from the OS
// keyring. Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring can be reached at all.
// Best-effort: a read that fails with anything other than "not found" means
// the backend is missing or locked.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || err == keyring.ErrNotFound
}
