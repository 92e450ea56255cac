package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(ctx.Context()); err != nil {
		return err
	}
	fmt.Printf("Initialized nahar storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	if err := storage.EnsureDefaultSettings(ctx.Context(), ctx.Store); err != nil {
		return fmt.Errorf("failed to write default settings: %w", err)
	}
	return nil
}

// reset removes a file-backed store, or every key of a network store.
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" && samePath(c.Source, dbPath) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
	}

	switch storage.BackendOf(ctx.Store) {
	case storage.BackendSQLite, storage.BackendJSON:
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to release file locks
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
		return nil
	default:
		if err := ctx.Store.Init(ctx.Context()); err != nil {
			return err
		}
		keys, err := ctx.Store.Keys(ctx.Context(), "")
		if err != nil {
			return fmt.Errorf("failed to list existing keys: %w", err)
		}
		for _, key := range keys {
			if err := ctx.Store.Delete(ctx.Context(), key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		fmt.Printf("Deleted %d existing keys at: %s\n", len(keys), dbPath)
		return nil
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// copyFrom copies every stored value from another backend. Values are
// opaque strings, so any backend can feed any other.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	sourceStore, err := storage.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	if err := sourceStore.Load(ctx.Context()); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	keys, err := sourceStore.Keys(ctx.Context(), "")
	if err != nil {
		return fmt.Errorf("failed to list source keys: %w", err)
	}
	for _, key := range keys {
		value, ok, err := sourceStore.Get(ctx.Context(), key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := ctx.Store.Set(ctx.Context(), key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	fmt.Printf("    Migrated %d keys\n", len(keys))
	return nil
}
