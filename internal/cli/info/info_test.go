package info

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julianstephens/nahar/internal/assistant"
	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
)

type countingGenerator struct {
	calls atomic.Int32
	err   error
}

func (g *countingGenerator) Generate(ctx context.Context, req assistant.Request) (string, error) {
	g.calls.Add(1)
	if g.err != nil {
		return "", g.err
	}
	return "generated", nil
}

func newContext(t *testing.T, gen assistant.Generator) *cli.Context {
	t.Helper()
	mem := storage.NewMemoryStore()
	settings := models.Settings{Language: "en", Timezone: "UTC", Model: "test"}
	if err := storage.SaveSettings(context.Background(), mem, settings); err != nil {
		t.Fatal(err)
	}
	return &cli.Context{
		Store:     mem,
		Clock:     func() time.Time { return time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC) },
		Generator: gen,
	}
}

func TestSummaryCmd(t *testing.T) {
	gen := &countingGenerator{}
	ctx := newContext(t, gen)

	if err := (&SummaryCmd{}).Run(ctx); err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if gen.calls.Load() != 0 {
		t.Error("summary without tasks should not call the generator")
	}

	store, _ := ctx.Tasks()
	_, err := store.Add(ctx.Context(), models.TaskDraft{
		Title: "Prepare talk", Category: models.CategoryWork, Priority: models.PriorityHigh, DueDate: "2026-03-08",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := (&SummaryCmd{}).Run(ctx); err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if gen.calls.Load() != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls.Load())
	}
}

func TestInfoCmd(t *testing.T) {
	gen := &countingGenerator{}
	ctx := newContext(t, gen)

	if err := (&InfoCmd{View: "daily"}).Run(ctx); err != nil {
		t.Fatalf("info daily failed: %v", err)
	}
	if err := (&InfoCmd{View: "daily"}).Run(ctx); err != nil {
		t.Fatalf("info daily failed: %v", err)
	}
	if gen.calls.Load() != 1 {
		t.Errorf("daily info should be cached, generator calls = %d", gen.calls.Load())
	}
	if err := (&InfoCmd{View: "daily", Fresh: true}).Run(ctx); err != nil {
		t.Fatalf("info daily --fresh failed: %v", err)
	}
	if gen.calls.Load() != 2 {
		t.Errorf("--fresh should refetch, generator calls = %d", gen.calls.Load())
	}
}

func TestInfoCmd_FetchError(t *testing.T) {
	ctx := newContext(t, &countingGenerator{err: errors.New("unavailable")})

	err := (&InfoCmd{View: "tech"}).Run(ctx)
	if err == nil || err.Error() != "Failed to fetch up-to-date information." {
		t.Errorf("info error = %v", err)
	}
}

func TestTopicCmds(t *testing.T) {
	ctx := newContext(t, &countingGenerator{})

	if err := (&TopicShowCmd{}).Run(ctx); err != nil {
		t.Errorf("topic show failed: %v", err)
	}
	if err := (&TopicSetCmd{Topic: []string{"Islamic", "Golden", "Age"}}).Run(ctx); err != nil {
		t.Fatalf("topic set failed: %v", err)
	}
	svc, _ := ctx.Assistant()
	if topic, _ := svc.Topic(ctx.Context()); topic != "Islamic Golden Age" {
		t.Errorf("topic = %q", topic)
	}
	if err := (&InfoCmd{View: "monthly"}).Run(ctx); err != nil {
		t.Errorf("info monthly failed: %v", err)
	}
}
