package repository

import (
	"context"
	"time"

	"github.com/josephcavalcante/projeto-todolist/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, title string, date time.Time) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Event, error)
	ListByMonth(ctx context.Context, year int, month time.Month) ([]domain.Event, error)
}
