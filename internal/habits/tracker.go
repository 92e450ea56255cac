package habits

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
)

// PrayerSource looks up the prayer times for a date (YYYY-MM-DD).
type PrayerSource interface {
	Timings(ctx context.Context, date string) (*models.PrayerTimes, error)
}

// MealExtractor pulls main meals and their times out of a free-text diet plan.
type MealExtractor interface {
	ExtractMeals(ctx context.Context, plan string) ([]models.Meal, error)
}

// Day is the habit list for one calendar date.
type Day struct {
	Date   string
	Habits []models.Habit
	// PrayerErr is set when prayer times could not be looked up; the Fajr
	// habit is then missing from Habits.
	PrayerErr error
}

// Tracker assembles today's habits and applies user actions to them.
type Tracker struct {
	store  *Store
	prayer PrayerSource
	meals  MealExtractor
}

// NewTracker builds a tracker. prayer and meals may be nil, which disables the
// Fajr habit and diet sync respectively.
func NewTracker(store *Store, prayer PrayerSource, meals MealExtractor) *Tracker {
	return &Tracker{store: store, prayer: prayer, meals: meals}
}

var ErrDietSyncUnavailable = errors.New("diet sync needs a text generation API key")

// generate builds the uncompleted habit list for date.
func (t *Tracker) generate(ctx context.Context, date string) (Day, error) {
	day := Day{Date: date}

	var prayer *models.PrayerTimes
	if t.prayer != nil {
		p, err := t.prayer.Timings(ctx, date)
		if err != nil {
			logger.Warn("Prayer times unavailable, omitting Fajr habit", "date", date, "error", err)
			day.PrayerErr = err
		} else {
			prayer = p
		}
	}

	meals, err := t.store.DietPlan(ctx)
	if err != nil {
		return Day{}, err
	}

	day.Habits = SortByTime(append(InitialHabits(prayer), DietHabits(meals)...))
	return day, nil
}

// Today returns today's habits with their saved completion state.
func (t *Tracker) Today(ctx context.Context) (Day, error) {
	day, err := t.generate(ctx, t.store.Today())
	if err != nil {
		return Day{}, err
	}
	statuses, err := t.store.Statuses(ctx, day.Date)
	if err != nil {
		return Day{}, err
	}
	day.Habits = Reconcile(day.Habits, statuses)
	return day, nil
}

// Toggle flips habit id for today, saves the whole day's statuses and archives
// the habit with its new state.
func (t *Tracker) Toggle(ctx context.Context, id string) (models.Habit, error) {
	day, err := t.Today(ctx)
	if err != nil {
		return models.Habit{}, err
	}

	updated, habit, ok := Toggle(day.Habits, id)
	if !ok {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	if err := t.store.SaveStatuses(ctx, day.Date, StatusMap(updated)); err != nil {
		return models.Habit{}, err
	}

	status := models.StatusNotExecuted
	if habit.IsCompleted {
		status = models.StatusCompleted
	}
	if err := t.store.Archive(ctx, habit, status); err != nil {
		return habit, fmt.Errorf("archiving habit %s: %w", id, err)
	}
	return habit, nil
}

// SyncDiet extracts meals from plan and replaces today's diet habits with them.
// Nothing is changed when extraction fails.
func (t *Tracker) SyncDiet(ctx context.Context, plan string) (Day, error) {
	if t.meals == nil {
		return Day{}, ErrDietSyncUnavailable
	}

	meals, err := t.meals.ExtractMeals(ctx, plan)
	if err != nil {
		return Day{}, fmt.Errorf("extracting meals: %w", err)
	}

	day, err := t.Today(ctx)
	if err != nil {
		return Day{}, err
	}

	if err := t.store.SaveDietPlan(ctx, meals); err != nil {
		return Day{}, err
	}
	day.Habits = ApplyDietSync(day.Habits, meals)
	if err := t.store.SaveStatuses(ctx, day.Date, StatusMap(day.Habits)); err != nil {
		return Day{}, err
	}
	logger.Info("Diet plan synced", "meals", len(meals))
	return day, nil
}
