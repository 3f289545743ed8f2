package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
)

type Service struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:  users,
		logger: logger,
	}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ChangeName updates the display name. The email is immutable and has no
// update path anywhere in the system.
func (s *Service) ChangeName(ctx context.Context, userID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := s.users.UpdateName(ctx, userID, name); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}
