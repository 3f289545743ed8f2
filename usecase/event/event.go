// Package event manages calendar events. Events are global, keyed by their
// unique date, and follow the same boolean success/failure surface as tasks.
package event

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
	"github.com/josephcavalcante/projeto-todolist/usecase"
)

type Service struct {
	events   repository.EventRepository
	notifier usecase.Notifier
	logger   *zap.Logger
}

func New(events repository.EventRepository, notifier usecase.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		events:   events,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, title, description string, date time.Time, location string) bool {
	event, err := domain.NewEvent(title, description, date, location)
	if err != nil {
		return false
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		s.logger.Error("event create failed", zap.Error(err))
		return false
	}

	s.publish(usecase.EventCreated, created.Title)
	return true
}

func (s *Service) Edit(ctx context.Context, oldTitle string, oldDate time.Time, newTitle, newDescription string, newDate time.Time, newLocation string) bool {
	current, err := s.events.Get(ctx, oldTitle, oldDate)
	if err != nil {
		return false
	}

	replacement, err := domain.NewEvent(newTitle, newDescription, newDate, newLocation)
	if err != nil {
		return false
	}
	replacement.ID = current.ID
	replacement.RegisteredAt = current.RegisteredAt

	if err := s.events.Update(ctx, replacement); err != nil {
		s.logger.Error("event update failed", zap.Error(err))
		return false
	}

	s.publish(usecase.EventUpdated, replacement.Title)
	return true
}

func (s *Service) Delete(ctx context.Context, title string, date time.Time) bool {
	event, err := s.events.Get(ctx, title, date)
	if err != nil {
		return false
	}
	if err := s.events.Delete(ctx, event.ID); err != nil {
		s.logger.Error("event delete failed", zap.Error(err))
		return false
	}

	s.publish(usecase.EventDeleted, event.Title)
	return true
}

func (s *Service) Find(ctx context.Context, title string, date time.Time) (*domain.Event, error) {
	return s.events.Get(ctx, title, date)
}

func (s *Service) List(ctx context.Context) []domain.Event {
	events, err := s.events.List(ctx)
	if err != nil {
		s.logger.Error("event list failed", zap.Error(err))
		return nil
	}
	return events
}

func (s *Service) ListByDate(ctx context.Context, date time.Time) []domain.Event {
	events, err := s.events.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("event list failed", zap.Error(err))
		return nil
	}
	return events
}

func (s *Service) ListByMonth(ctx context.Context, year int, month time.Month) []domain.Event {
	events, err := s.events.ListByMonth(ctx, year, month)
	if err != nil {
		s.logger.Error("event list failed", zap.Error(err))
		return nil
	}
	return events
}

func (s *Service) publish(kind usecase.EventKind, title string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(usecase.Notification{
		Kind:  kind,
		Title: title,
		At:    time.Now(),
	})
}
