// Package task holds the business-logic facade for user tasks. Validation
// failures and storage errors never cross this boundary as errors: mutations
// report plain success/failure, queries degrade to empty results, and the
// underlying cause is logged here.
package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
	"github.com/josephcavalcante/projeto-todolist/usecase"
)

// Validator screens raw input before a task entity is built.
type Validator interface {
	ValidTitle(title string) bool
}

type Service struct {
	tasks     repository.TaskRepository
	subtasks  repository.SubtaskRepository
	validator Validator
	notifier  usecase.Notifier
	logger    *zap.Logger
}

// New wires the task service. The repository is expected to be the
// cache-aside decorated one; the service itself is stateless and safe for
// concurrent use.
func New(tasks repository.TaskRepository, subtasks repository.SubtaskRepository, validator Validator, notifier usecase.Notifier, logger *zap.Logger) *Service {
	if validator == nil {
		validator = TitleValidator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tasks:     tasks,
		subtasks:  subtasks,
		validator: validator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create registers a new task for the owner. It reports false on invalid
// input or storage failure.
func (s *Service) Create(ctx context.Context, title, description string, deadline time.Time, priority int, ownerID string) bool {
	if !s.validator.ValidTitle(title) {
		return false
	}
	task, err := domain.NewTask(title, description, deadline, priority, ownerID)
	if err != nil {
		return false
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error("task create failed",
			zap.String("owner_id", ownerID), zap.Error(err))
		return false
	}

	s.publish(usecase.TaskCreated, created.OwnerID, created.Title)
	return true
}

// Edit replaces the task identified by oldTitle (scoped to the owner) with a
// new version, preserving identity and registration date.
func (s *Service) Edit(ctx context.Context, oldTitle, newTitle, newDescription string, newDeadline time.Time, newPriority int, newPercent float64, ownerID string) bool {
	if !s.validator.ValidTitle(newTitle) {
		return false
	}

	current, err := s.tasks.GetByTitle(ctx, ownerID, oldTitle)
	if err != nil {
		s.logStorage("task edit lookup failed", ownerID, err)
		return false
	}

	replacement, err := domain.NewTask(newTitle, newDescription, newDeadline, newPriority, ownerID)
	if err != nil {
		return false
	}
	replacement.ID = current.ID
	replacement.RegisteredAt = current.RegisteredAt
	replacement.Percent = domain.ClampPercent(newPercent)

	if err := s.tasks.Update(ctx, replacement); err != nil {
		s.logStorage("task update failed", ownerID, err)
		return false
	}

	s.publish(usecase.TaskUpdated, ownerID, replacement.Title)
	return true
}

// Delete removes the owner's task with the given title.
func (s *Service) Delete(ctx context.Context, title, ownerID string) bool {
	task, err := s.tasks.GetByTitle(ctx, ownerID, title)
	if err != nil {
		s.logStorage("task delete lookup failed", ownerID, err)
		return false
	}

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		s.logStorage("task delete failed", ownerID, err)
		return false
	}

	if s.subtasks != nil {
		if err := s.subtasks.DeleteByTask(ctx, task.ID); err != nil {
			s.logger.Warn("orphaned subtasks not removed",
				zap.String("task_id", task.ID), zap.Error(err))
		}
	}

	s.publish(usecase.TaskDeleted, ownerID, task.Title)
	return true
}

// FindByTitle returns the owner's task with the given title. A task that
// exists under a different owner behaves exactly like a missing one.
func (s *Service) FindByTitle(ctx context.Context, title, ownerID string) (*domain.Task, error) {
	task, err := s.tasks.GetByTitle(ctx, ownerID, title)
	if err != nil {
		return nil, err
	}
	s.attachSubtasks(ctx, task)
	return task, nil
}

// List returns the owner's tasks, unfiltered. Storage failures are logged
// and surface as an empty list.
func (s *Service) List(ctx context.Context, ownerID string) []domain.Task {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logStorage("task list failed", ownerID, err)
		return nil
	}
	for i := range tasks {
		s.attachSubtasks(ctx, &tasks[i])
	}
	return tasks
}

// ListFiltered applies a filter strategy to the owner's task list.
func (s *Service) ListFiltered(ctx context.Context, filter FilterStrategy, ownerID string) []domain.Task {
	tasks := s.List(ctx, ownerID)
	if filter == nil {
		return tasks
	}
	return filter(tasks)
}

// ListSorted applies a sort strategy to the owner's task list.
func (s *Service) ListSorted(ctx context.Context, sort SortStrategy, ownerID string) []domain.Task {
	tasks := s.List(ctx, ownerID)
	if sort == nil {
		return tasks
	}
	return sort(tasks)
}

// attachSubtasks loads the task's subtasks and applies the derived
// percentage. Sub-repository trouble leaves the stored value in place.
func (s *Service) attachSubtasks(ctx context.Context, task *domain.Task) {
	if s.subtasks == nil || task == nil {
		return
	}
	subtasks, err := s.subtasks.ListByTask(ctx, task.ID)
	if err != nil {
		s.logger.Warn("subtask lookup failed",
			zap.String("task_id", task.ID), zap.Error(err))
		return
	}
	task.Subtasks = subtasks
	task.Percent = task.Percentage()
}

func (s *Service) publish(kind usecase.EventKind, ownerID, title string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(usecase.Notification{
		Kind:    kind,
		OwnerID: ownerID,
		Title:   title,
		At:      time.Now(),
	})
}

func (s *Service) logStorage(msg, ownerID string, err error) {
	if domain.IsNotFound(err) {
		s.logger.Debug(msg, zap.String("owner_id", ownerID), zap.Error(err))
		return
	}
	s.logger.Error(msg, zap.String("owner_id", ownerID), zap.Error(err))
}
