package repository

import (
	"context"
	"errors"
	"time"

	"github.com/josephcavalcante/projeto-todolist/domain"
)

// ErrCacheMiss signals that no usable snapshot exists for the requested
// owner. A miss is the normal cold-cache case, not a failure.
var ErrCacheMiss = errors.New("task cache: miss")

// TaskCache holds per-owner snapshots of full task lists with a TTL.
// It is purely an optimization and never the source of truth.
type TaskCache interface {
	Get(ctx context.Context, ownerID string) ([]domain.Task, error)
	Set(ctx context.Context, ownerID string, tasks []domain.Task, ttl time.Duration) error
	Delete(ctx context.Context, ownerID string) error
}
