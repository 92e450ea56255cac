package habits

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(t *testing.T, start time.Time) (*Store, *clock, *storage.MemoryStore) {
	t.Helper()
	c := &clock{t: start}
	mem := storage.NewMemoryStore()
	return NewStore(mem, time.UTC, WithClock(c.now)), c, mem
}

func TestStatusKey(t *testing.T) {
	if got := StatusKey("2026-04-01"); got != "habit_status_2026-04-01" {
		t.Errorf("StatusKey() = %q", got)
	}
}

func TestStore_StatusesResetOnNewDay(t *testing.T) {
	s, c, _ := newTestStore(t, time.Date(2026, 4, 1, 23, 30, 0, 0, time.UTC))
	ctx := context.Background()

	if err := s.SaveTodayStatuses(ctx, map[string]bool{"home_workout": true}); err != nil {
		t.Fatalf("SaveTodayStatuses() error = %v", err)
	}
	got, err := s.TodayStatuses(ctx)
	if err != nil || !got["home_workout"] {
		t.Fatalf("TodayStatuses() = %v, %v", got, err)
	}

	c.t = c.t.Add(time.Hour)
	got, err = s.TodayStatuses(ctx)
	if err != nil || len(got) != 0 {
		t.Errorf("TodayStatuses() next day = %v, %v", got, err)
	}

	prev, _ := s.Statuses(ctx, "2026-04-01")
	if !prev["home_workout"] {
		t.Error("previous day's statuses were lost")
	}
}

func TestStore_ArchiveDedupsByDay(t *testing.T) {
	s, c, _ := newTestStore(t, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()
	habit := models.Habit{ID: "home_workout", TitleKey: "habit_home_workout"}

	if err := s.Archive(ctx, habit, models.StatusCompleted); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	c.t = c.t.Add(time.Minute)
	if err := s.Archive(ctx, habit, models.StatusNotExecuted); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	archived, _ := s.ListArchived(ctx)
	if len(archived) != 1 {
		t.Fatalf("archived = %+v, want one record", archived)
	}
	if archived[0].Status != models.StatusNotExecuted || archived[0].Date != "2026-04-01" {
		t.Errorf("archived record = %+v", archived[0])
	}

	// A new day gets its own record
	c.t = c.t.Add(24 * time.Hour)
	if err := s.Archive(ctx, habit, models.StatusCompleted); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	archived, _ = s.ListArchived(ctx)
	if len(archived) != 2 {
		t.Errorf("archived = %+v, want two records", archived)
	}

	if err := s.Archive(ctx, habit, "skipped"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestStore_PruneStatuses(t *testing.T) {
	s, _, mem := newTestStore(t, time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()
	for _, day := range []string{"2026-04-01", "2026-04-05", "2026-04-09", "2026-04-10"} {
		if err := s.SaveStatuses(ctx, day, map[string]bool{"a": true}); err != nil {
			t.Fatalf("SaveStatuses() error = %v", err)
		}
	}
	_ = mem.Set(ctx, "habit_status_garbage", "{}")

	pruned, err := s.PruneStatuses(ctx, "2026-04-09")
	if err != nil || pruned != 2 {
		t.Fatalf("PruneStatuses() = %d, %v", pruned, err)
	}
	keys, _ := mem.Keys(ctx, "habit_status_")
	want := []string{"habit_status_2026-04-09", "habit_status_2026-04-10", "habit_status_garbage"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("remaining keys = %v, want %v", keys, want)
	}

	if _, err := s.PruneStatuses(ctx, "yesterday"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestStore_DietPlan(t *testing.T) {
	s, _, _ := newTestStore(t, time.Now())
	ctx := context.Background()

	meals, err := s.DietPlan(ctx)
	if err != nil || len(meals) != 0 {
		t.Fatalf("DietPlan() empty = %v, %v", meals, err)
	}
	want := []models.Meal{{Meal: "Breakfast", Time: "07:00"}}
	if err := s.SaveDietPlan(ctx, want); err != nil {
		t.Fatalf("SaveDietPlan() error = %v", err)
	}
	meals, _ = s.DietPlan(ctx)
	if !reflect.DeepEqual(meals, want) {
		t.Errorf("DietPlan() = %v, want %v", meals, want)
	}
}

func TestStore_TypeMismatchedValuesReadEmpty(t *testing.T) {
	s, _, mem := newTestStore(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_ = mem.Set(ctx, StatusKey("2026-04-01"), `{"home_workout":true,"fajr_prayer":"yes"}`)
	_ = mem.Set(ctx, "archived_habits", `[{"id":"home_workout","status":"completed","date":"2026-03-31"},{"id":"fajr_prayer","status":1}]`)
	_ = mem.Set(ctx, "diet_plan", `[{"meal":"Breakfast","time":"07:00"},{"meal":"Dinner","time":1930}]`)

	statuses, err := s.TodayStatuses(ctx)
	if err != nil || len(statuses) != 0 {
		t.Errorf("TodayStatuses() = %v, %v; want empty", statuses, err)
	}
	archived, err := s.ListArchived(ctx)
	if err != nil || len(archived) != 0 {
		t.Errorf("ListArchived() = %v, %v; want empty", archived, err)
	}
	meals, err := s.DietPlan(ctx)
	if err != nil || len(meals) != 0 {
		t.Errorf("DietPlan() = %v, %v; want empty", meals, err)
	}
}
