package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/storage"
	"github.com/julianstephens/nahar/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{Store: store}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func ptr[T any](v T) *T { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		List: true,
	}

	err := cmd.Run(ctx)
	if err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		Language:             ptr("ar"),
		Timezone:             ptr("Africa/Cairo"),
		Lat:                  ptr(30.0444),
		Lon:                  ptr(31.2357),
		Model:                ptr("gemini-2.5-pro"),
		NotificationsEnabled: ptr(true),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := storage.GetSettings(context.Background(), ctx.Store)
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if got.Language != "ar" || got.Timezone != "Africa/Cairo" || got.Model != "gemini-2.5-pro" {
		t.Errorf("unexpected settings: %+v", got)
	}
	if !got.LocationSet || got.Latitude != 30.0444 || got.Longitude != 31.2357 {
		t.Errorf("location not stored: %+v", got)
	}
	if !got.NotificationsEnabled {
		t.Error("expected notifications to be enabled")
	}

	if err := (&SettingsCmd{ClearLocation: true}).Run(ctx); err != nil {
		t.Fatalf("clear location failed: %v", err)
	}
	got, _ = storage.GetSettings(context.Background(), ctx.Store)
	if got.LocationSet {
		t.Error("expected location to be cleared")
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"unsupported language", SettingsCmd{Language: ptr("fr")}},
		{"bad timezone", SettingsCmd{Timezone: ptr("Mars/Olympus")}},
		{"latitude only", SettingsCmd{Lat: ptr(10.0)}},
		{"latitude out of range", SettingsCmd{Lat: ptr(91.0), Lon: ptr(0.0)}},
		{"longitude out of range", SettingsCmd{Lat: ptr(0.0), Lon: ptr(-181.0)}},
		{"clear with coordinates", SettingsCmd{ClearLocation: true, Lat: ptr(1.0), Lon: ptr(1.0)}},
		{"empty model", SettingsCmd{Model: ptr("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}

	got, _ := storage.GetSettings(context.Background(), ctx.Store)
	if got.Language != "en" {
		t.Errorf("invalid update changed settings: %+v", got)
	}
}
