package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/habits"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/prayer"
	"github.com/julianstephens/nahar/internal/tui/forms"
)

type HabitCmd struct {
	Today   HabitTodayCmd   `cmd:"" help:"Show today's habits." default:"1"`
	Toggle  HabitToggleCmd  `cmd:"" help:"Mark a habit done or undone for today."`
	Diet    HabitDietCmd    `cmd:"" help:"Sync meal habits from a diet plan."`
	Archive HabitArchiveCmd `cmd:"" help:"Show the habit history."`
	Prune   HabitPruneCmd   `cmd:"" help:"Delete old per-day habit and info cache entries."`
}

func printDay(ctx *cli.Context, day habits.Day) {
	lang := ctx.Language()
	fmt.Printf("Habits for %s:\n", day.Date)
	if len(day.Habits) == 0 {
		fmt.Println("  No habits.")
	}
	for _, h := range day.Habits {
		mark := "○"
		if h.IsCompleted {
			mark = "✓"
		}
		at := "     "
		if h.HasTime() {
			at = h.Time
		}
		fmt.Printf("  %s %s  %-18s %s\n", mark, at, h.ID, habits.Title(h.TitleKey, lang))
	}
	if day.PrayerErr != nil {
		if errors.Is(day.PrayerErr, prayer.ErrNoLocation) {
			fmt.Println("\nℹ Set a location to add the Fajr prayer: nahar settings --lat <lat> --lon <lon>")
		} else {
			fmt.Println("\n⚠ Prayer times unavailable today; Fajr is hidden.")
		}
	}
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	tracker, err := ctx.Tracker()
	if err != nil {
		return err
	}
	day, err := tracker.Today(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	printDay(ctx, day)
	return nil
}

type HabitToggleCmd struct {
	ID string `arg:"" help:"Habit ID (see 'nahar habit today')."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	tracker, err := ctx.Tracker()
	if err != nil {
		return err
	}
	habit, err := tracker.Toggle(ctx.Context(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to toggle habit: %w", err)
	}

	title := habits.Title(habit.TitleKey, ctx.Language())
	if habit.IsCompleted {
		fmt.Printf("✓ %s done\n", title)
	} else {
		fmt.Printf("○ %s marked not done\n", title)
	}
	return nil
}

type HabitDietCmd struct {
	Plan string `arg:"" optional:"" help:"Free-text diet plan. Omit to fill in a form."`
	Show bool   `help:"Show the meals from the last sync instead."`
}

func (c *HabitDietCmd) Run(ctx *cli.Context) error {
	if c.Show {
		store, err := ctx.Habits()
		if err != nil {
			return err
		}
		meals, err := store.DietPlan(ctx.Context())
		if err != nil {
			return err
		}
		if len(meals) == 0 {
			fmt.Println("No diet plan synced yet.")
			return nil
		}
		fmt.Println("Meals:")
		for _, m := range meals {
			fmt.Printf("  %s  %s\n", m.Time, m.Meal)
		}
		return nil
	}

	plan := c.Plan
	if strings.TrimSpace(plan) == "" {
		if err := forms.NewDietForm(&plan).Run(); err != nil {
			return fmt.Errorf("diet form: %w", err)
		}
	}

	tracker, err := ctx.Tracker()
	if err != nil {
		return err
	}
	day, err := tracker.SyncDiet(ctx.Context(), plan)
	if err != nil {
		return fmt.Errorf("failed to sync diet plan: %w", err)
	}

	fmt.Println("Diet plan synced.")
	printDay(ctx, day)
	return nil
}

type HabitArchiveCmd struct {
	Days int `short:"d" help:"Only show the last N days." default:"7"`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}
	records, err := store.ListArchived(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to load habit history: %w", err)
	}

	since := ""
	if c.Days > 0 {
		since = store.Now().AddDate(0, 0, -(c.Days - 1)).Format(constants.DateFormat)
	}

	lang := ctx.Language()
	shown := 0
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.Date < since {
			continue
		}
		mark := "✓"
		if r.Status == models.StatusNotExecuted {
			mark = "✗"
		}
		fmt.Printf("  %s  %s %s\n", r.Date, mark, habits.Title(r.TitleKey, lang))
		shown++
	}
	if shown == 0 {
		fmt.Println("No habit history.")
	}
	return nil
}

type HabitPruneCmd struct {
	Keep int `short:"k" help:"Keep this many most recent days." default:"30"`
}

func (c *HabitPruneCmd) Run(ctx *cli.Context) error {
	if c.Keep < 1 {
		return fmt.Errorf("--keep must be at least 1")
	}
	store, err := ctx.Habits()
	if err != nil {
		return err
	}
	before := store.Now().AddDate(0, 0, -(c.Keep - 1)).Format(constants.DateFormat)

	pruned, err := store.PruneStatuses(ctx.Context(), before)
	if err != nil {
		return fmt.Errorf("failed to prune habit statuses: %w", err)
	}

	svc, err := ctx.Assistant()
	if err != nil {
		return err
	}
	cached, err := svc.PruneInfoCache(ctx.Context(), before)
	if err != nil {
		return fmt.Errorf("failed to prune info cache: %w", err)
	}

	fmt.Printf("Removed %d day(s) of habit state and %d cached info page(s) before %s\n", pruned, cached, before)
	return nil
}
