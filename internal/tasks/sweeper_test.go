package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
)

func TestSweepOnce(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	s, mem := newTestStore(t, now)
	ctx := context.Background()

	seedTasks(t, mem, []models.Task{
		{ID: "past-timed", Title: "a", DueDate: "2026-02-10", DueTime: "11:00"},
		{ID: "past-day", Title: "b", DueDate: "2026-02-09"},
		{ID: "future", Title: "c", DueDate: "2026-02-10", DueTime: "13:00"},
		{ID: "today-untimed", Title: "d", DueDate: "2026-02-10"},
		{ID: "done", Title: "e", DueDate: "2026-02-01", IsCompleted: true},
	})

	var reported SweepResult
	sw := NewSweeper(s, WithSweepCallback(func(r SweepResult) { reported = r }))

	result, err := sw.SweepOnce(ctx)
	if err != nil {
		t.Fatalf("SweepOnce() error = %v", err)
	}
	if len(result.Archived) != 2 || result.Failed != 0 {
		t.Fatalf("SweepOnce() = %+v", result)
	}
	if len(reported.Archived) != 2 {
		t.Errorf("callback got %+v", reported)
	}

	active, _ := s.List(ctx)
	if got := ids(active); !equalIDs(got, []string{"future", "today-untimed", "done"}) {
		t.Errorf("active after sweep = %v", got)
	}
	archived, _ := s.ListArchived(ctx)
	if len(archived) != 2 {
		t.Fatalf("archived = %+v", archived)
	}
	for _, a := range archived {
		if a.Status != models.StatusNotExecuted {
			t.Errorf("archived %s with status %s", a.ID, a.Status)
		}
	}

	// A second sweep finds nothing new
	result, err = sw.SweepOnce(ctx)
	if err != nil || len(result.Archived) != 0 {
		t.Errorf("second SweepOnce() = %+v, %v", result, err)
	}
}

func TestSweepOnce_FailuresAreIsolated(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	p := &flakyProvider{MemoryStore: storage.NewMemoryStore(), failKey: constants.KeyArchivedTasks}
	s := NewStore(p, time.UTC, WithClock(fixedClock(now)))
	seedTasks(t, p, []models.Task{
		{ID: "x", Title: "x", DueDate: "2026-02-01"},
		{ID: "y", Title: "y", DueDate: "2026-02-02"},
	})

	p.armed.Store(true)
	result, err := NewSweeper(s).SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce() error = %v", err)
	}
	if result.Failed != 2 || len(result.Archived) != 0 {
		t.Errorf("SweepOnce() = %+v", result)
	}
	active, _ := s.List(context.Background())
	if len(active) != 2 {
		t.Errorf("failed archives removed tasks: %+v", active)
	}
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	s, mem := newTestStore(t, now)
	seedTasks(t, mem, []models.Task{{ID: "old", Title: "old", DueDate: "2026-01-01"}})

	swept := make(chan SweepResult, 1)
	sw := NewSweeper(s,
		WithInterval(10*time.Millisecond),
		WithSweepCallback(func(r SweepResult) { swept <- r }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sw.Run(ctx) }()

	select {
	case r := <-swept:
		if len(r.Archived) != 1 {
			t.Errorf("swept = %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never fired")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
