package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrNoAPIKey is returned when no API key is configured anywhere
	ErrNoAPIKey = errors.New("no API key configured, run 'nahar keyring set-api-key' or set " + constants.EnvAPIKey)
)

func get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func set(user, what, secret string) error {
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func remove(user, what string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	return set(constants.DefaultKeyringUser, "connection string", connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return remove(constants.DefaultKeyringUser, "connection string")
}

func GetAPIKey() (string, error) {
	return get(constants.APIKeyKeyringUser)
}

func SetAPIKey(key string) error {
	return set(constants.APIKeyKeyringUser, "API key", key)
}

func DeleteAPIKey() error {
	return remove(constants.APIKeyKeyringUser, "API key")
}

// ResolveAPIKey returns the text-generation API key, preferring the environment
// (NAHAR_API_KEY, then API_KEY) over the keyring.
func ResolveAPIKey() (string, error) {
	for _, env := range []string{constants.EnvAPIKey, constants.EnvLegacyAPIKey} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, nil
		}
	}
	key, err := GetAPIKey()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNoAPIKey
		}
		return "", fmt.Errorf("%w (%v)", ErrNoAPIKey, err)
	}
	return key, nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
