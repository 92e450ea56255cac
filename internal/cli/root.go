package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/nahar/internal/assistant"
	"github.com/julianstephens/nahar/internal/habits"
	"github.com/julianstephens/nahar/internal/keyring"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/notifier"
	"github.com/julianstephens/nahar/internal/prayer"
	"github.com/julianstephens/nahar/internal/storage"
	"github.com/julianstephens/nahar/internal/tasks"
	"github.com/julianstephens/nahar/internal/utils"
)

// Context is shared by every command. Services are built on first use from
// the stored settings.
type Context struct {
	Store storage.Provider
	Debug bool

	// Optional overrides, mostly for tests.
	Parent       context.Context
	Clock        func() time.Time
	Generator    assistant.Generator
	PrayerLookup prayer.Lookup
	Notifier     notifier.Sender

	settings  *models.Settings
	tasks     *tasks.Store
	habits    *habits.Store
	tracker   *habits.Tracker
	assistant *assistant.Service
}

// Context returns the command's parent context.
func (c *Context) Context() context.Context {
	if c.Parent != nil {
		return c.Parent
	}
	return context.Background()
}

func (c *Context) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Settings returns the stored settings with defaults applied.
func (c *Context) Settings() (models.Settings, error) {
	if c.settings != nil {
		return *c.settings, nil
	}
	settings, err := storage.GetSettings(c.Context(), c.Store)
	if err != nil {
		return models.Settings{}, err
	}
	c.settings = &settings
	return settings, nil
}

// SaveSettings persists settings and drops services built from the old ones.
func (c *Context) SaveSettings(settings models.Settings) error {
	if err := storage.SaveSettings(c.Context(), c.Store, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	c.settings = &settings
	c.tasks, c.habits, c.tracker, c.assistant = nil, nil, nil, nil
	return nil
}

// Location is the configured timezone.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q in settings: %w", settings.Timezone, err)
	}
	return loc, nil
}

func (c *Context) Tasks() (*tasks.Store, error) {
	if c.tasks != nil {
		return c.tasks, nil
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	var opts []tasks.Option
	if c.Clock != nil {
		opts = append(opts, tasks.WithClock(c.Clock))
	}
	c.tasks = tasks.NewStore(c.Store, loc, opts...)
	return c.tasks, nil
}

func (c *Context) Habits() (*habits.Store, error) {
	if c.habits != nil {
		return c.habits, nil
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	var opts []habits.Option
	if c.Clock != nil {
		opts = append(opts, habits.WithClock(c.Clock))
	}
	c.habits = habits.NewStore(c.Store, loc, opts...)
	return c.habits, nil
}

// Assistant builds the text generation service. Without an API key the
// service still answers, falling back to its localized notices.
func (c *Context) Assistant() (*assistant.Service, error) {
	if c.assistant != nil {
		return c.assistant, nil
	}
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}

	gen := c.Generator
	if gen == nil {
		gen, err = c.geminiClient(settings)
		if err != nil {
			logger.Warn("Text generation unavailable", "error", err)
		}
	}

	var opts []assistant.Option
	if c.Clock != nil {
		opts = append(opts, assistant.WithClock(c.Clock))
	}
	c.assistant = assistant.NewService(gen, c.Store, settings, opts...)
	return c.assistant, nil
}

// geminiClient returns a nil Generator when no key is configured.
func (c *Context) geminiClient(settings models.Settings) (assistant.Generator, error) {
	key, err := keyring.ResolveAPIKey()
	if err != nil {
		return nil, err
	}
	client, err := assistant.NewGeminiClient(c.Context(), key, settings.Model)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// HasGenerator reports whether text generation is configured.
func (c *Context) HasGenerator() bool {
	if c.Generator != nil {
		return true
	}
	_, err := keyring.ResolveAPIKey()
	return err == nil
}

// Tracker wires the habit store to prayer times and meal extraction.
func (c *Context) Tracker() (*habits.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	store, err := c.Habits()
	if err != nil {
		return nil, err
	}
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}

	lookup := c.PrayerLookup
	if lookup == nil {
		lookup = prayer.NewClient()
	}
	times := prayer.NewCachedProvider(lookup, c.Store, settings)

	var meals habits.MealExtractor
	if c.HasGenerator() {
		svc, err := c.Assistant()
		if err != nil {
			return nil, err
		}
		meals = svc
	}

	c.tracker = habits.NewTracker(store, times, meals)
	return c.tracker, nil
}

// Sender returns the notifier, or nil when notifications are disabled.
func (c *Context) Sender() notifier.Sender {
	settings, err := c.Settings()
	if err != nil || !settings.NotificationsEnabled {
		return nil
	}
	if c.Notifier != nil {
		return c.Notifier
	}
	return notifier.New()
}

// Notify sends text when notifications are enabled. Failures are logged only.
func (c *Context) Notify(text string) {
	notifier.Send(c.Context(), c.Sender(), text)
}

// Language is the configured display language.
func (c *Context) Language() string {
	settings, err := c.Settings()
	if err != nil {
		return "en"
	}
	return settings.Language
}

// Today is the current date in the configured timezone.
func (c *Context) Today() (string, error) {
	loc, err := c.Location()
	if err != nil {
		return "", err
	}
	return utils.Today(c.now().In(loc)), nil
}

// Now is the current time in the configured timezone.
func (c *Context) Now() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return c.now().In(loc), nil
}
