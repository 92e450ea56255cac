package postgres

import (
	"context"
	"os"
	"testing"
)

// TestStore_Integration runs against a real database.
// Set POSTGRES_TEST_URL to run it, e.g.
// POSTGRES_TEST_URL="postgres://nahar_user@localhost:5432/nahar_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	store := New(connStr)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Cleanup(func() {
		keys, _ := store.Keys(ctx, "it_")
		for _, k := range keys {
			_ = store.Delete(ctx, k)
		}
	})

	if err := store.Set(ctx, "it_tasks", "[]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "it_tasks", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	v, ok, err := store.Get(ctx, "it_tasks")
	if err != nil || !ok || v != `[{"id":"1"}]` {
		t.Fatalf("Get() = %q, %v, %v", v, ok, err)
	}

	if err := store.Set(ctx, "it_habit_status_2026-01-01", "{}"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "itXhabit", "{}"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	keys, err := store.Keys(ctx, "it_habit_")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "it_habit_status_2026-01-01" {
		t.Errorf("Keys() = %v", keys)
	}
	_ = store.Delete(ctx, "itXhabit")

	current, latest, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if current != latest {
		t.Errorf("schema at %d, latest %d", current, latest)
	}
}
