package prayer

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
)

type countingLookup struct {
	calls int
	err   error
}

func (l *countingLookup) Timings(ctx context.Context, date string, lat, lon float64) (*models.PrayerTimes, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return &models.PrayerTimes{Fajr: "05:00", Dhuhr: "12:00"}, nil
}

func TestCachedProvider(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	lookup := &countingLookup{}
	settings := models.Settings{Latitude: 21.42, Longitude: 39.82, LocationSet: true}
	p := NewCachedProvider(lookup, mem, settings)

	for i := 0; i < 3; i++ {
		times, err := p.Timings(ctx, "2026-03-07")
		if err != nil || times.Fajr != "05:00" {
			t.Fatalf("Timings() = %+v, %v", times, err)
		}
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1", lookup.calls)
	}

	// Another day is a fresh lookup
	if _, err := p.Timings(ctx, "2026-03-08"); err != nil {
		t.Fatalf("Timings() error = %v", err)
	}
	if lookup.calls != 2 {
		t.Errorf("lookup calls = %d, want 2", lookup.calls)
	}

	// Moving invalidates the cached day
	settings.Latitude = 30.04
	moved := NewCachedProvider(lookup, mem, settings)
	if _, err := moved.Timings(ctx, "2026-03-07"); err != nil {
		t.Fatalf("Timings() error = %v", err)
	}
	if lookup.calls != 3 {
		t.Errorf("lookup calls after move = %d, want 3", lookup.calls)
	}
}

func TestCachedProvider_Errors(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()

	noLoc := NewCachedProvider(&countingLookup{}, mem, models.Settings{})
	if _, err := noLoc.Timings(ctx, "2026-03-07"); !errors.Is(err, ErrNoLocation) {
		t.Errorf("Timings() without location error = %v", err)
	}

	failing := &countingLookup{err: ErrLookupFailed}
	p := NewCachedProvider(failing, mem, models.Settings{LocationSet: true})
	if _, err := p.Timings(ctx, "2026-03-07"); !errors.Is(err, ErrLookupFailed) {
		t.Errorf("Timings() error = %v", err)
	}
	// Failures are not cached
	_, _ = p.Timings(ctx, "2026-03-07")
	if failing.calls != 2 {
		t.Errorf("lookup calls = %d, want 2", failing.calls)
	}
}
