package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
)

var errInjected = errors.New("injected failure")

// flakyProvider fails Set for one key when armed.
type flakyProvider struct {
	*storage.MemoryStore
	failKey string
	armed   atomic.Bool
}

func (p *flakyProvider) Set(ctx context.Context, key, value string) error {
	if p.armed.Load() && key == p.failKey {
		return errInjected
	}
	return p.MemoryStore.Set(ctx, key, value)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs() func() (string, error) {
	var n atomic.Int64
	return func() (string, error) {
		return fmt.Sprintf("task-%d", n.Add(1)), nil
	}
}

func newTestStore(t *testing.T, now time.Time) (*Store, *storage.MemoryStore) {
	t.Helper()
	mem := storage.NewMemoryStore()
	return NewStore(mem, time.UTC, WithClock(fixedClock(now)), WithIDGenerator(sequentialIDs())), mem
}

func draft(title, date, tod string) models.TaskDraft {
	return models.TaskDraft{
		Title:    title,
		Category: models.CategoryWork,
		Priority: models.PriorityMedium,
		DueDate:  date,
		DueTime:  tod,
	}
}

func mustAdd(t *testing.T, s *Store, d models.TaskDraft) models.Task {
	t.Helper()
	task, err := s.Add(context.Background(), d)
	if err != nil {
		t.Fatalf("Add(%q) error = %v", d.Title, err)
	}
	return task
}

func seedTasks(t *testing.T, p storage.Provider, tasks []models.Task) {
	t.Helper()
	if err := storage.WriteJSON(context.Background(), p, constants.KeyTasks, tasks); err != nil {
		t.Fatalf("seeding tasks: %v", err)
	}
}
