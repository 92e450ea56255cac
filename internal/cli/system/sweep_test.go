package system

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/notifier"
	"github.com/julianstephens/nahar/internal/storage"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (r *recordingSender) Notify(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, text)
	return nil
}

func (r *recordingSender) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

var sweepNow = time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)

func setupSweepContext(t *testing.T, notify bool) (*cli.Context, *recordingSender) {
	t.Helper()
	mem := storage.NewMemoryStore()
	settings := models.Settings{Language: "en", Timezone: "UTC", Model: "m", NotificationsEnabled: notify}
	if err := storage.SaveSettings(context.Background(), mem, settings); err != nil {
		t.Fatal(err)
	}
	sender := &recordingSender{}
	return &cli.Context{
		Store:    mem,
		Clock:    func() time.Time { return sweepNow },
		Notifier: sender,
	}, sender
}

func addTask(t *testing.T, ctx *cli.Context, title, date, clock string) models.Task {
	t.Helper()
	store, err := ctx.Tasks()
	if err != nil {
		t.Fatal(err)
	}
	task, err := store.Add(ctx.Context(), models.TaskDraft{
		Title: title, Category: models.CategoryPersonal, Priority: models.PriorityHigh,
		DueDate: date, DueTime: clock,
	})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	return task
}

func TestSweepCmd(t *testing.T) {
	ctx, sender := setupSweepContext(t, true)
	addTask(t, ctx, "Renew passport", "2026-03-07", "08:00")
	addTask(t, ctx, "Call plumber", "2026-03-06", "")
	addTask(t, ctx, "Pay rent", "2026-03-07", "")

	if err := (&SweepCmd{}).Run(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	store, _ := ctx.Tasks()
	active, _ := store.List(ctx.Context())
	if len(active) != 1 || active[0].Title != "Pay rent" {
		t.Errorf("active after sweep = %+v, want only Pay rent", active)
	}
	archived, _ := store.ListArchived(ctx.Context())
	if len(archived) != 2 {
		t.Fatalf("archived = %d, want 2", len(archived))
	}
	for _, a := range archived {
		if a.Status != models.StatusNotExecuted {
			t.Errorf("archived %q with status %q", a.Title, a.Status)
		}
	}

	msgs := sender.messages()
	if len(msgs) != 1 || !strings.HasPrefix(msgs[0], "Archived 2 overdue tasks") {
		t.Errorf("notifications = %q", msgs)
	}

	// Second sweep finds nothing and stays silent
	if err := (&SweepCmd{}).Run(ctx); err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if len(sender.messages()) != 1 {
		t.Errorf("empty sweep should not notify, got %q", sender.messages())
	}
}

func TestSweepCmd_NotificationsDisabled(t *testing.T) {
	ctx, sender := setupSweepContext(t, false)
	addTask(t, ctx, "Renew passport", "2026-03-01", "")

	if err := (&SweepCmd{}).Run(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(sender.messages()) != 0 {
		t.Errorf("disabled notifications were sent: %q", sender.messages())
	}
}

func TestWatchCmd_StopsOnCancel(t *testing.T) {
	ctx, sender := setupSweepContext(t, true)
	addTask(t, ctx, "Submit report", "2026-03-08", "")
	addTask(t, ctx, "Old chore", "2026-03-01", "")

	parent, cancel := context.WithCancel(context.Background())
	ctx.Parent = parent
	done := make(chan error, 1)
	go func() { done <- (&WatchCmd{Interval: 10 * time.Millisecond}).Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	msgs := sender.messages()
	if len(msgs) != 2 {
		t.Fatalf("notifications = %q, want alert and sweep", msgs)
	}
	if !strings.Contains(msgs[0], "Submit report") {
		t.Errorf("first notification should be the high-priority alert, got %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "Old chore") {
		t.Errorf("second notification should report the sweep, got %q", msgs[1])
	}
}

func TestNotifyCmd(t *testing.T) {
	ctx, sender := setupSweepContext(t, true)

	if err := (&NotifyCmd{Message: []string{"  "}}).Run(ctx); err == nil {
		t.Error("empty notification should fail")
	}
	if err := (&NotifyCmd{Message: []string{"hello"}, DryRun: true}).Run(ctx); err != nil {
		t.Errorf("dry run failed: %v", err)
	}
	if err := (&NotifyCmd{Message: []string{"hello", "tray"}}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if msgs := sender.messages(); len(msgs) != 1 || msgs[0] != "hello tray" {
		t.Errorf("sent = %q", msgs)
	}

	sender.err = notifier.ErrTrayNotRunning
	if err := (&NotifyCmd{Message: []string{"again"}}).Run(ctx); err == nil {
		t.Error("expected error when tray is not running")
	}
}
