// Package subtask manages the subtask collections owned by tasks. Subtasks
// live in the document sub-repository, not in the relational store, and the
// parent task's percentage is derived from them on read.
package subtask

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
	"github.com/josephcavalcante/projeto-todolist/usecase"
)

// TaskFinder resolves an owner's task by title; the task service provides it.
type TaskFinder interface {
	FindByTitle(ctx context.Context, title, ownerID string) (*domain.Task, error)
}

type Service struct {
	subtasks repository.SubtaskRepository
	tasks    TaskFinder
	notifier usecase.Notifier
	logger   *zap.Logger
}

func New(subtasks repository.SubtaskRepository, tasks TaskFinder, notifier usecase.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		subtasks: subtasks,
		tasks:    tasks,
		notifier: notifier,
		logger:   logger,
	}
}

// Add attaches a new subtask to the owner's task with the given title.
func (s *Service) Add(ctx context.Context, taskTitle, title, description string, percent float64, ownerID string) bool {
	parent, err := s.tasks.FindByTitle(ctx, taskTitle, ownerID)
	if err != nil {
		return false
	}

	subtask, err := domain.NewSubtask(parent.ID, title, description, percent)
	if err != nil {
		return false
	}

	if _, err := s.subtasks.Create(ctx, subtask); err != nil {
		s.logger.Error("subtask create failed",
			zap.String("task_id", parent.ID), zap.Error(err))
		return false
	}

	s.publishParentUpdated(parent)
	return true
}

// Remove deletes the named subtask from the owner's task.
func (s *Service) Remove(ctx context.Context, taskTitle, title, ownerID string) bool {
	parent, err := s.tasks.FindByTitle(ctx, taskTitle, ownerID)
	if err != nil {
		return false
	}

	subtasks, err := s.subtasks.ListByTask(ctx, parent.ID)
	if err != nil {
		s.logger.Error("subtask list failed",
			zap.String("task_id", parent.ID), zap.Error(err))
		return false
	}

	for _, sub := range subtasks {
		if sub.Title != title {
			continue
		}
		if err := s.subtasks.Delete(ctx, parent.ID, sub.ID); err != nil {
			s.logger.Error("subtask delete failed",
				zap.String("task_id", parent.ID), zap.Error(err))
			return false
		}
		s.publishParentUpdated(parent)
		return true
	}
	return false
}

// List returns the subtasks of the owner's task with the given title.
func (s *Service) List(ctx context.Context, taskTitle, ownerID string) []domain.Subtask {
	parent, err := s.tasks.FindByTitle(ctx, taskTitle, ownerID)
	if err != nil {
		return nil
	}
	subtasks, err := s.subtasks.ListByTask(ctx, parent.ID)
	if err != nil {
		s.logger.Error("subtask list failed",
			zap.String("task_id", parent.ID), zap.Error(err))
		return nil
	}
	return subtasks
}

// A subtask change shifts the parent's derived percentage, so listeners are
// told the task itself changed.
func (s *Service) publishParentUpdated(parent *domain.Task) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(usecase.Notification{
		Kind:    usecase.TaskUpdated,
		OwnerID: parent.OwnerID,
		Title:   parent.Title,
		At:      time.Now(),
	})
}
