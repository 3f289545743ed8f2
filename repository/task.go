package repository

import (
	"context"

	"github.com/josephcavalcante/projeto-todolist/domain"
)

// TaskRepository is the durable task store contract. The cache-aside
// decorator in repository/cached implements the same interface, so callers
// never know whether a cache sits in front of them.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByTitle(ctx context.Context, ownerID, title string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
}
