package repository

import (
	"context"

	"github.com/josephcavalcante/projeto-todolist/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) error
}
