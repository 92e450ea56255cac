package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
)

func TestStore_AddAndList(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, now)
	ctx := context.Background()

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("List() on empty store = %#v, want empty non-nil slice", tasks)
	}

	added := mustAdd(t, s, draft("Write report", "2026-03-02", "10:00"))
	if added.ID != "task-1" || added.IsCompleted || !added.CreatedAt.Equal(now) {
		t.Errorf("Add() = %+v", added)
	}

	mustAdd(t, s, draft("Call bank", "2026-03-02", ""))
	tasks, _ = s.List(ctx)
	if len(tasks) != 2 || tasks[0].Title != "Write report" || tasks[1].Title != "Call bank" {
		t.Errorf("List() = %+v", tasks)
	}
}

func TestStore_AddRejectsInvalidDraft(t *testing.T) {
	s, _ := newTestStore(t, time.Now())
	if _, err := s.Add(context.Background(), draft("", "2026-03-02", "")); err == nil {
		t.Error("expected error for empty title")
	}
	tasks, _ := s.List(context.Background())
	if len(tasks) != 0 {
		t.Errorf("invalid task was stored: %+v", tasks)
	}
}

func TestNewTaskIDIsUUIDv7(t *testing.T) {
	id, err := newTaskID()
	if err != nil {
		t.Fatalf("newTaskID() error = %v", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("id %q is not a UUID: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("version = %d, want 7", parsed.Version())
	}
	other, _ := newTaskID()
	if other == id {
		t.Error("ids collided")
	}
}

func TestStore_Update(t *testing.T) {
	s, _ := newTestStore(t, time.Now())
	ctx := context.Background()
	task := mustAdd(t, s, draft("Draft", "2026-03-02", ""))

	task.Title = "Final"
	if err := s.Update(ctx, task); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := s.Get(ctx, task.ID)
	if err != nil || got.Title != "Final" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}

	// Unknown id is a no-op
	ghost := task
	ghost.ID = "ghost"
	if err := s.Update(ctx, ghost); err != nil {
		t.Errorf("Update() unknown id error = %v", err)
	}
	tasks, _ := s.List(ctx)
	if len(tasks) != 1 {
		t.Errorf("Update() of unknown id changed the set: %+v", tasks)
	}
}

func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore(t, time.Now())
	ctx := context.Background()
	a := mustAdd(t, s, draft("a", "2026-03-02", ""))
	mustAdd(t, s, draft("b", "2026-03-02", ""))

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, a.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestStore_Archive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, now)
	ctx := context.Background()
	a := mustAdd(t, s, draft("a", "2026-03-02", ""))
	b := mustAdd(t, s, draft("b", "2026-03-02", ""))

	if err := s.Archive(ctx, a, models.StatusCompleted); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	active, _ := s.List(ctx)
	if len(active) != 1 || active[0].ID != b.ID {
		t.Errorf("active after archive = %+v", active)
	}
	archived, _ := s.ListArchived(ctx)
	if len(archived) != 1 {
		t.Fatalf("archived = %+v", archived)
	}
	rec := archived[0]
	if rec.ID != a.ID || rec.Status != models.StatusCompleted || !rec.ArchivedAt.Equal(now) || !rec.IsCompleted {
		t.Errorf("archived record = %+v", rec)
	}

	// Re-archiving an absent id leaves both sets unchanged
	if err := s.Archive(ctx, a, models.StatusNotExecuted); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("re-archive error = %v, want ErrTaskNotFound", err)
	}
	active, _ = s.List(ctx)
	archived, _ = s.ListArchived(ctx)
	if len(active) != 1 || len(archived) != 1 {
		t.Errorf("re-archive changed state: active=%d archived=%d", len(active), len(archived))
	}

	if err := s.Archive(ctx, b, "lost"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestStore_ArchiveRollsBackOnActiveWriteFailure(t *testing.T) {
	p := &flakyProvider{MemoryStore: storage.NewMemoryStore(), failKey: constants.KeyTasks}
	s := NewStore(p, time.UTC, WithIDGenerator(sequentialIDs()))
	ctx := context.Background()
	task := mustAdd(t, s, draft("a", "2026-03-02", ""))

	p.armed.Store(true)
	if err := s.Archive(ctx, task, models.StatusCompleted); !errors.Is(err, errInjected) {
		t.Fatalf("Archive() error = %v, want injected failure", err)
	}
	archived, _ := s.ListArchived(ctx)
	if len(archived) != 0 {
		t.Errorf("archive write was not rolled back: %+v", archived)
	}
	active, _ := s.List(ctx)
	if len(active) != 1 {
		t.Errorf("active set changed: %+v", active)
	}
}

func TestStore_CompleteAndDeleteArchived(t *testing.T) {
	s, _ := newTestStore(t, time.Now())
	ctx := context.Background()
	task := mustAdd(t, s, draft("a", "2026-03-02", ""))

	done, err := s.Complete(ctx, task.ID)
	if err != nil || !done.IsCompleted {
		t.Fatalf("Complete() = %+v, %v", done, err)
	}
	if _, err := s.Complete(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second Complete() error = %v", err)
	}

	if err := s.DeleteArchived(ctx, task.ID); err != nil {
		t.Fatalf("DeleteArchived() error = %v", err)
	}
	archived, _ := s.ListArchived(ctx)
	if len(archived) != 0 {
		t.Errorf("archived after delete = %+v", archived)
	}
	if err := s.DeleteArchived(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DeleteArchived() missing error = %v", err)
	}
}

func TestStore_TypeMismatchedCollectionReadsEmpty(t *testing.T) {
	s, mem := newTestStore(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_ = mem.Set(ctx, constants.KeyTasks,
		`[{"id":"a","title":"t1","category":"work","priority":"low","dueDate":"2024-01-01"},{"id":"b","title":"t2","isCompleted":"yes"}]`)
	_ = mem.Set(ctx, constants.KeyArchivedTasks, `[{"id":"c","status":7}]`)

	tasks, err := s.List(ctx)
	if err != nil || len(tasks) != 0 {
		t.Fatalf("List() = %+v, %v; want empty", tasks, err)
	}
	archived, err := s.ListArchived(ctx)
	if err != nil || len(archived) != 0 {
		t.Fatalf("ListArchived() = %+v, %v; want empty", archived, err)
	}

	// Nothing from the unreadable value is written back
	mustAdd(t, s, draft("fresh", "2026-03-02", ""))
	raw, _, _ := mem.Get(ctx, constants.KeyTasks)
	if strings.Contains(raw, `"t2"`) || strings.Contains(raw, `"t1"`) {
		t.Errorf("stored value kept stale tasks: %q", raw)
	}
}

func TestStore_CorruptCollectionReadsEmpty(t *testing.T) {
	s, mem := newTestStore(t, time.Now())
	ctx := context.Background()
	_ = mem.Set(ctx, constants.KeyTasks, "not json")

	tasks, err := s.List(ctx)
	if err != nil || len(tasks) != 0 {
		t.Fatalf("List() = %+v, %v", tasks, err)
	}
	// The store recovers by writing a fresh collection
	mustAdd(t, s, draft("fresh", "2026-03-02", ""))
	raw, _, _ := mem.Get(ctx, constants.KeyTasks)
	if !strings.Contains(raw, "fresh") {
		t.Errorf("stored value = %q", raw)
	}
}
