// Package habits tracks per-day habit completion and builds each day's habit
// list from fixed templates, prayer times and the stored diet plan.
package habits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
	"github.com/julianstephens/nahar/internal/utils"
)

var ErrHabitNotFound = errors.New("habit not found")

// Store persists one completion map per calendar day plus the habit archive.
// A new day starts with no statuses because its key has never been written.
type Store struct {
	provider storage.Provider
	loc      *time.Location
	now      func() time.Time

	mu sync.Mutex
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(p storage.Provider, loc *time.Location, opts ...Option) *Store {
	if loc == nil {
		loc = time.Local
	}
	s := &Store{provider: p, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Now() time.Time { return s.now().In(s.loc) }

// Today is the current calendar date in the store's location.
func (s *Store) Today() string { return utils.Today(s.Now()) }

func (s *Store) Location() *time.Location { return s.loc }

// StatusKey is the storage key of the completion map for day (YYYY-MM-DD).
func StatusKey(day string) string {
	return constants.HabitStatusKeyPrefix + day
}

func (s *Store) Statuses(ctx context.Context, day string) (map[string]bool, error) {
	statuses := map[string]bool{}
	if _, err := storage.ReadJSON(ctx, s.provider, StatusKey(day), &statuses); err != nil {
		return nil, fmt.Errorf("loading habit statuses for %s: %w", day, err)
	}
	if statuses == nil {
		statuses = map[string]bool{}
	}
	return statuses, nil
}

func (s *Store) SaveStatuses(ctx context.Context, day string, statuses map[string]bool) error {
	if statuses == nil {
		statuses = map[string]bool{}
	}
	if err := storage.WriteJSON(ctx, s.provider, StatusKey(day), statuses); err != nil {
		return fmt.Errorf("saving habit statuses for %s: %w", day, err)
	}
	return nil
}

func (s *Store) TodayStatuses(ctx context.Context) (map[string]bool, error) {
	return s.Statuses(ctx, s.Today())
}

func (s *Store) SaveTodayStatuses(ctx context.Context, statuses map[string]bool) error {
	return s.SaveStatuses(ctx, s.Today(), statuses)
}

func (s *Store) readArchived(ctx context.Context) ([]models.ArchivedHabit, error) {
	archived := []models.ArchivedHabit{}
	if _, err := storage.ReadJSON(ctx, s.provider, constants.KeyArchivedHabits, &archived); err != nil {
		return nil, fmt.Errorf("loading archived habits: %w", err)
	}
	if archived == nil {
		archived = []models.ArchivedHabit{}
	}
	return archived, nil
}

// Archive records habit for today with status, replacing any earlier record
// for the same habit and day.
func (s *Store) Archive(ctx context.Context, habit models.Habit, status models.ArchiveStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid archive status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	archived, err := s.readArchived(ctx)
	if err != nil {
		return err
	}

	now := s.Now()
	today := utils.Today(now)
	kept := make([]models.ArchivedHabit, 0, len(archived)+1)
	for _, a := range archived {
		if a.ID == habit.ID && a.Date == today {
			continue
		}
		kept = append(kept, a)
	}
	kept = append(kept, models.ArchivedHabit{
		ID:         habit.ID,
		TitleKey:   habit.TitleKey,
		Status:     status,
		Date:       today,
		ArchivedAt: now,
	})

	if err := storage.WriteJSON(ctx, s.provider, constants.KeyArchivedHabits, kept); err != nil {
		return fmt.Errorf("saving archived habits: %w", err)
	}
	return nil
}

func (s *Store) ListArchived(ctx context.Context) ([]models.ArchivedHabit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readArchived(ctx)
}

// PruneStatuses deletes the completion maps of days before the given date and
// returns how many were removed.
func (s *Store) PruneStatuses(ctx context.Context, before string) (int, error) {
	if !utils.ValidateDateFormat(before) {
		return 0, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", before)
	}
	keys, err := s.provider.Keys(ctx, constants.HabitStatusKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("listing habit status keys: %w", err)
	}

	pruned := 0
	for _, key := range keys {
		day := strings.TrimPrefix(key, constants.HabitStatusKeyPrefix)
		if !utils.ValidateDateFormat(day) || day >= before {
			continue
		}
		if err := s.provider.Delete(ctx, key); err != nil {
			return pruned, fmt.Errorf("deleting %s: %w", key, err)
		}
		pruned++
	}
	logger.Debug("Pruned habit statuses", "before", before, "count", pruned)
	return pruned, nil
}

// DietPlan returns the meals from the last diet sync.
func (s *Store) DietPlan(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	if _, err := storage.ReadJSON(ctx, s.provider, constants.KeyDietPlan, &meals); err != nil {
		return nil, fmt.Errorf("loading diet plan: %w", err)
	}
	return meals, nil
}

func (s *Store) SaveDietPlan(ctx context.Context, meals []models.Meal) error {
	if meals == nil {
		meals = []models.Meal{}
	}
	if err := storage.WriteJSON(ctx, s.provider, constants.KeyDietPlan, meals); err != nil {
		return fmt.Errorf("saving diet plan: %w", err)
	}
	return nil
}
