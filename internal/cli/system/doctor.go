package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/keyring"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/utils"
)

// schemaVersioner is implemented by the SQL backends.
type schemaVersioner interface {
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) error
	needsDB bool
	warning bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Task integrity", run: checkTasks, needsDB: true},
	{name: "Archive integrity", run: checkArchive, needsDB: true},
	{name: "Habit records", run: checkHabitRecords, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "API key", run: checkAPIKey, warning: true},
	{name: "Location", run: checkLocation, needsDB: true, warning: true},
	{name: "Log file", run: checkLogFile, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(ctx.Context()); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, _, err := ctx.Store.Get(ctx.Context(), constants.KeySettings); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sv, ok := ctx.Store.(schemaVersioner)
	if !ok {
		// Key-value backends carry no schema
		return nil
	}
	current, latest, err := sv.SchemaVersion(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sv, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := sv.SchemaVersion(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !models.ValidLanguage(settings.Language) {
		return fmt.Errorf("unsupported language %q", settings.Language)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	if settings.LocationSet && (settings.Latitude < -90 || settings.Latitude > 90 ||
		settings.Longitude < -180 || settings.Longitude > 180) {
		return fmt.Errorf("location %.4f, %.4f is out of range", settings.Latitude, settings.Longitude)
	}
	return nil
}

func checkTasks(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	active, err := store.List(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	ids := make(map[string]bool)
	for _, task := range active {
		if ids[task.ID] {
			return fmt.Errorf("duplicate task ID found: %s", task.ID)
		}
		ids[task.ID] = true
		if err := task.Validate(); err != nil {
			return fmt.Errorf("task %s: %w", task.ID, err)
		}
	}
	return nil
}

func checkArchive(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	archived, err := store.ListArchived(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get archived tasks: %w", err)
	}
	for _, entry := range archived {
		if !entry.Status.Valid() {
			return fmt.Errorf("archived task %s has unknown status %q", entry.ID, entry.Status)
		}
	}

	habitStore, err := ctx.Habits()
	if err != nil {
		return err
	}
	if _, err := habitStore.ListArchived(ctx.Context()); err != nil {
		return fmt.Errorf("failed to get archived habits: %w", err)
	}
	return nil
}

func checkHabitRecords(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys(ctx.Context(), constants.HabitStatusKeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to list habit records: %w", err)
	}
	invalid := 0
	for _, key := range keys {
		if !utils.ValidateDateFormat(strings.TrimPrefix(key, constants.HabitStatusKeyPrefix)) {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("found %d habit records with invalid date format", invalid)
	}

	habitStore, err := ctx.Habits()
	if err != nil {
		return err
	}
	if _, err := habitStore.DietPlan(ctx.Context()); err != nil {
		return fmt.Errorf("failed to read diet plan: %w", err)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkAPIKey(ctx *cli.Context) error {
	if ctx.Generator != nil {
		return nil
	}
	if _, err := keyring.ResolveAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNoAPIKey) {
			return fmt.Errorf("summaries, info pages and diet sync are unavailable: %w", err)
		}
		return err
	}
	return nil
}

func checkLocation(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !settings.LocationSet {
		return errors.New("no location set, Fajr is hidden; run 'nahar settings --lat <lat> --lon <lon>'")
	}
	return nil
}

func checkLogFile(ctx *cli.Context) error {
	path := logger.Path()
	if path == "" {
		return errors.New("file logging is not active")
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return fmt.Errorf("log directory unavailable: %w", err)
	}
	return nil
}
