package system

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/keyring"
	"github.com/julianstephens/nahar/internal/storage"
	"github.com/julianstephens/nahar/internal/storage/postgres"
)

// KeyringSetCmd stores the database connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL or Redis connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	switch storage.DetectBackend(cmd.ConnectionString) {
	case storage.BackendPostgres:
	case storage.BackendRedis:
		if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
			return fmt.Errorf("failed to store connection string in keyring: %w", err)
		}
		fmt.Println("✓ Connection string stored successfully in OS keyring")
		fmt.Println("  Use it with --config keyring")
		return nil
	default:
		if !strings.Contains(cmd.ConnectionString, "host=") {
			return errors.New("connection string must be a valid PostgreSQL or Redis connection string")
		}
	}

	_, err := postgres.ValidateConnString(cmd.ConnectionString)
	if err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			// The keyring is encrypted, so embedded credentials are allowed here
			fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
			fmt.Println("   If you prefer to keep passwords separate from connection strings, consider using .pgpass instead.")
		} else {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  Use it with --config keyring")
	return nil
}

// KeyringGetCmd prints the stored connection string with its password masked
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'nahar keyring set-connection' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println("Connection string retrieved from keyring:")
	fmt.Println(storage.Redact(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringSetAPIKeyCmd stores the text generation API key. Without an
// argument the key is read from a masked prompt, or from stdin when piped.
type KeyringSetAPIKeyCmd struct {
	Key string `arg:"" optional:"" help:"API key. Omit to be prompted."`
}

func (cmd *KeyringSetAPIKeyCmd) Run(ctx *cli.Context) error {
	key := strings.TrimSpace(cmd.Key)
	if key == "" {
		var err error
		if key, err = readAPIKey(); err != nil {
			return err
		}
	}
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("✓ API key stored successfully in OS keyring")
	return nil
}

func readAPIKey() (string, error) {
	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice == 0 {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading API key: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	var key string
	err := huh.NewInput().
		Title("Gemini API key").
		EchoMode(huh.EchoModePassword).
		Value(&key).
		WithTheme(huh.ThemeDracula()).
		Run()
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	return strings.TrimSpace(key), nil
}

type KeyringDeleteAPIKeyCmd struct{}

func (cmd *KeyringDeleteAPIKeyCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	fmt.Println("✓ API key deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("✓ Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("ℹ No connection string stored in keyring")
	}
	if _, err := keyring.GetAPIKey(); err == nil {
		fmt.Println("✓ API key is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		if _, envErr := keyring.ResolveAPIKey(); envErr == nil {
			fmt.Println("ℹ API key is read from the environment")
		} else {
			fmt.Println("ℹ No API key stored in keyring")
		}
	}
	return nil
}
