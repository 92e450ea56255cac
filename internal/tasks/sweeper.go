package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
)

// SweepResult reports one overdue sweep.
type SweepResult struct {
	Archived []models.Task
	Failed   int
}

// Sweeper archives overdue tasks as not_executed on a fixed interval.
type Sweeper struct {
	store    *Store
	interval time.Duration
	onSweep  func(SweepResult)
	limit    int
}

type SweeperOption func(*Sweeper)

// WithInterval sets how often Run sweeps.
func WithInterval(d time.Duration) SweeperOption {
	return func(s *Sweeper) { s.interval = d }
}

// WithSweepCallback is called after each sweep that archived at least one task.
func WithSweepCallback(fn func(SweepResult)) SweeperOption {
	return func(s *Sweeper) { s.onSweep = fn }
}

// WithConcurrency caps the number of archive calls in flight.
func WithConcurrency(n int) SweeperOption {
	return func(s *Sweeper) { s.limit = n }
}

func NewSweeper(store *Store, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		store:    store,
		interval: constants.SweepInterval,
		limit:    8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Overdue filters tasks to the ones overdue at now.
func Overdue(tasks []models.Task, now time.Time, loc *time.Location) []models.Task {
	var overdue []models.Task
	for _, t := range tasks {
		if IsOverdue(t, now, loc) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// SweepOnce loads a fresh snapshot and archives every overdue task in parallel.
// A failed archive is logged and does not affect the others.
func (s *Sweeper) SweepOnce(ctx context.Context) (SweepResult, error) {
	snapshot, err := s.store.List(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("sweep: %w", err)
	}

	overdue := Overdue(snapshot, s.store.Now(), s.store.Location())
	if len(overdue) == 0 {
		return SweepResult{}, nil
	}

	var (
		mu     sync.Mutex
		result SweepResult
		g      errgroup.Group
	)
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	log := logger.Component("sweeper")

	for _, task := range overdue {
		g.Go(func() error {
			err := s.store.Archive(ctx, task, models.StatusNotExecuted)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Archived = append(result.Archived, task)
			case errors.Is(err, ErrTaskNotFound):
				// Completed or deleted since the snapshot was taken
				log.Debug("Overdue task already gone", "id", task.ID)
			default:
				result.Failed++
				log.Error("Failed to archive overdue task", "id", task.ID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Info("Overdue sweep finished", "archived", len(result.Archived), "failed", result.Failed)
	if s.onSweep != nil && len(result.Archived) > 0 {
		s.onSweep(result)
	}
	return result, nil
}

// Run sweeps every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	log := logger.Component("sweeper")
	log.Debug("Sweeper started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				log.Warn("Overdue sweep failed", "error", err)
			}
		case <-ctx.Done():
			log.Debug("Sweeper stopped")
			return ctx.Err()
		}
	}
}
