package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/keyring"
	"github.com/julianstephens/nahar/internal/storage/postgres"
	redisstore "github.com/julianstephens/nahar/internal/storage/redis"
	"github.com/julianstephens/nahar/internal/storage/sqlite"
)

const (
	// MemoryConfig selects the in-process store.
	MemoryConfig = ":memory:"
	// KeyringConfig reads the connection string from the OS keyring.
	KeyringConfig = "keyring"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
	BackendJSON     Backend = "json"
	BackendMemory   Backend = "memory"
)

// DetectBackend picks a backend from the shape of a --config value.
func DetectBackend(config string) Backend {
	switch {
	case config == MemoryConfig:
		return BackendMemory
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(config, "redis://"), strings.HasPrefix(config, "rediss://"):
		return BackendRedis
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

// BackendOf reports which backend p is. Network stores hide their
// connection string from GetConfigPath, so it cannot be sniffed.
func BackendOf(p Provider) Backend {
	switch p.(type) {
	case *MemoryStore:
		return BackendMemory
	case *JSONStore:
		return BackendJSON
	case *postgres.Store:
		return BackendPostgres
	case *redisstore.Store:
		return BackendRedis
	default:
		return BackendSQLite
	}
}

// Open returns an unopened Provider for config. Callers run Init or Load next.
func Open(config string) (Provider, error) {
	if config == KeyringConfig {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("reading connection string from keyring: %w", err)
		}
		if connStr == KeyringConfig {
			return nil, errors.New("keyring connection string cannot be 'keyring'")
		}
		return Open(connStr)
	}

	switch DetectBackend(config) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendPostgres:
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	case BackendRedis:
		return redisstore.New(config, constants.RedisKeyPrefix), nil
	case BackendJSON:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return NewJSONStore(path), nil
	default:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// IsNotInitialized reports whether err means the store was never initialized.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized) ||
		errors.Is(err, sqlite.ErrNotInitialized) ||
		errors.Is(err, postgres.ErrNotInitialized) ||
		errors.Is(err, redisstore.ErrNotInitialized)
}

// ConfigDir returns the directory holding logs and lockfiles for a --config value.
// Network backends fall back to the default config directory.
func ConfigDir(config string) (string, error) {
	switch DetectBackend(config) {
	case BackendSQLite, BackendJSON:
		path, err := ExpandPath(config)
		if err != nil {
			return "", err
		}
		return filepath.Dir(path), nil
	default:
		path, err := ExpandPath(constants.DefaultConfigPath)
		if err != nil {
			return "", err
		}
		return filepath.Dir(path), nil
	}
}

// Redact hides the password of a connection string for display.
func Redact(config string) string {
	if scheme, rest, ok := strings.Cut(config, "://"); ok {
		// the last @ ends the user info, passwords may contain @
		at := strings.LastIndex(rest, "@")
		if at == -1 {
			return config
		}
		user, _, hasPassword := strings.Cut(rest[:at], ":")
		if !hasPassword {
			return config
		}
		return scheme + "://" + user + ":****" + rest[at:]
	}

	if !strings.Contains(config, "password=") {
		return config
	}
	fields := strings.Fields(config)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
