package repository

import (
	"context"

	"github.com/josephcavalcante/projeto-todolist/domain"
)

// SubtaskRepository is the document sub-repository owning subtask storage.
// Insertion order of a task's subtasks is not meaningful.
type SubtaskRepository interface {
	Create(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error)
	Delete(ctx context.Context, taskID, id string) error
	ListByTask(ctx context.Context, taskID string) ([]domain.Subtask, error)
	DeleteByTask(ctx context.Context, taskID string) error
}
