// Package tasks owns the active and archived task collections and the
// overdue rules that move tasks between them.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
)

var ErrTaskNotFound = errors.New("task not found")

// Store reads and rewrites whole task collections in a storage.Provider.
// Calls on one Store are serialized; separate processes are last-writer-wins.
type Store struct {
	provider storage.Provider
	loc      *time.Location
	now      func() time.Time
	newID    func() (string, error)

	mu sync.Mutex
}

type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates a task store. Due dates are interpreted in loc.
func NewStore(p storage.Provider, loc *time.Location, opts ...Option) *Store {
	if loc == nil {
		loc = time.Local
	}
	s := &Store{
		provider: p,
		loc:      loc,
		now:      time.Now,
		newID:    newTaskID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTaskID returns a UUIDv7: a millisecond timestamp followed by random bits.
func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *Store) Location() *time.Location { return s.loc }

// Now returns the store's clock reading in its location.
func (s *Store) Now() time.Time { return s.now().In(s.loc) }

func (s *Store) readActive(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if _, err := storage.ReadJSON(ctx, s.provider, constants.KeyTasks, &tasks); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *Store) writeActive(ctx context.Context, tasks []models.Task) error {
	if err := storage.WriteJSON(ctx, s.provider, constants.KeyTasks, tasks); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (s *Store) readArchived(ctx context.Context) ([]models.ArchivedTask, error) {
	archived := []models.ArchivedTask{}
	if _, err := storage.ReadJSON(ctx, s.provider, constants.KeyArchivedTasks, &archived); err != nil {
		return nil, fmt.Errorf("loading archived tasks: %w", err)
	}
	if archived == nil {
		archived = []models.ArchivedTask{}
	}
	return archived, nil
}

func (s *Store) writeArchived(ctx context.Context, archived []models.ArchivedTask) error {
	if err := storage.WriteJSON(ctx, s.provider, constants.KeyArchivedTasks, archived); err != nil {
		return fmt.Errorf("saving archived tasks: %w", err)
	}
	return nil
}

// List returns the active tasks in stored order.
func (s *Store) List(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readActive(ctx)
}

func (s *Store) Get(ctx context.Context, id string) (models.Task, error) {
	tasks, err := s.List(ctx)
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

func (s *Store) Add(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	if err := draft.Validate(); err != nil {
		return models.Task{}, err
	}
	id, err := s.newID()
	if err != nil {
		return models.Task{}, fmt.Errorf("generating task id: %w", err)
	}

	task := models.Task{ID: id, CreatedAt: s.now()}.Apply(draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readActive(ctx)
	if err != nil {
		return models.Task{}, err
	}
	tasks = append(tasks, task)
	if err := s.writeActive(ctx, tasks); err != nil {
		return models.Task{}, err
	}
	logger.Debug("Task added", "id", task.ID, "title", task.Title)
	return task, nil
}

// Update replaces the task with the same id. Unknown ids are ignored.
func (s *Store) Update(ctx context.Context, task models.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readActive(ctx)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			return s.writeActive(ctx, tasks)
		}
	}
	logger.Debug("Update of unknown task ignored", "id", task.ID)
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readActive(ctx)
	if err != nil {
		return err
	}
	kept, removed := without(tasks, id)
	if !removed {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.writeActive(ctx, kept)
}

func without(tasks []models.Task, id string) ([]models.Task, bool) {
	kept := make([]models.Task, 0, len(tasks))
	removed := false
	for _, t := range tasks {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	return kept, removed
}

// Archive moves task out of the active set into the archive with status.
// A task that is no longer active is left alone and ErrTaskNotFound is returned,
// so a stale caller cannot archive the same task twice.
func (s *Store) Archive(ctx context.Context, task models.Task, status models.ArchiveStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid archive status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.readActive(ctx)
	if err != nil {
		return err
	}
	kept, removed := without(tasks, task.ID)
	if !removed {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
	}

	archived, err := s.readArchived(ctx)
	if err != nil {
		return err
	}
	task.IsCompleted = status == models.StatusCompleted
	next := append(archived, models.ArchivedTask{
		Task:       task,
		Status:     status,
		ArchivedAt: s.now(),
	})

	// Archive first so a failed second write cannot lose the task
	if err := s.writeArchived(ctx, next); err != nil {
		return err
	}
	if err := s.writeActive(ctx, kept); err != nil {
		if rbErr := s.writeArchived(ctx, archived); rbErr != nil {
			logger.Error("Failed to roll back archive write", "id", task.ID, "error", rbErr)
		}
		return err
	}
	logger.Debug("Task archived", "id", task.ID, "status", status)
	return nil
}

// Complete marks the task done and archives it as completed.
func (s *Store) Complete(ctx context.Context, id string) (models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.Archive(ctx, task, models.StatusCompleted); err != nil {
		return models.Task{}, err
	}
	task.IsCompleted = true
	return task, nil
}

func (s *Store) ListArchived(ctx context.Context) ([]models.ArchivedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readArchived(ctx)
}

// DeleteArchived removes every archived record with the given task id.
func (s *Store) DeleteArchived(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	archived, err := s.readArchived(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.ArchivedTask, 0, len(archived))
	for _, a := range archived {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(archived) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.writeArchived(ctx, kept)
}
