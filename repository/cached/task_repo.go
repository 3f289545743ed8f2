// Package cached decorates the durable task repository with a cache-aside
// layer. Reads of an owner's task list try the cache first and repopulate it
// on a miss; every successful write invalidates the owner's snapshot so the
// next read rebuilds it from the durable store. The durable store is always
// the source of truth: cache trouble of any kind degrades to the durable
// path and never fails the calling operation.
package cached

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
)

type TaskRepository struct {
	repo   repository.TaskRepository
	cache  repository.TaskCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewTaskRepository wraps the durable repository with the given cache.
// The TTL bounds staleness even when an invalidation is lost (for example a
// crash between a committed write and the cache delete).
func NewTaskRepository(repo repository.TaskRepository, cache repository.TaskCache, ttl time.Duration, logger *zap.Logger) *TaskRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskRepository{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks, err := r.cache.Get(ctx, ownerID)
	if err == nil {
		return tasks, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		r.logger.Warn("task cache read failed, falling back to durable store",
			zap.String("owner_id", ownerID), zap.Error(err))
	}

	tasks, err = r.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed repopulation only costs the next read a miss.
	if err := r.cache.Set(ctx, ownerID, tasks, r.ttl); err != nil {
		r.logger.Warn("task cache write failed",
			zap.String("owner_id", ownerID), zap.Error(err))
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	created, err := r.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, created.OwnerID)
	return created, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := r.repo.Update(ctx, task); err != nil {
		return err
	}
	r.invalidate(ctx, task.OwnerID)
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	// The owner is needed for invalidation; look it up before the row goes.
	task, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, task.OwnerID)
	return nil
}

// GetByID bypasses the cache: point lookups must always reflect the durable
// store.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.repo.GetByID(ctx, id)
}

// GetByTitle bypasses the cache for the same reason as GetByID.
func (r *TaskRepository) GetByTitle(ctx context.Context, ownerID, title string) (*domain.Task, error) {
	return r.repo.GetByTitle(ctx, ownerID, title)
}

// invalidate drops the owner's snapshot after a successful write. The cache
// is never patched incrementally; the next list call repopulates it.
// Deleting an absent key is a no-op, and a failed delete is only logged:
// the TTL backstop caps how long the stale snapshot can survive.
func (r *TaskRepository) invalidate(ctx context.Context, ownerID string) {
	if err := r.cache.Delete(ctx, ownerID); err != nil {
		r.logger.Warn("task cache invalidation failed",
			zap.String("owner_id", ownerID), zap.Error(err))
	}
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
