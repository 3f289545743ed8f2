// Package auth handles registration, login and session lifecycle. Password
// hashing itself is an external concern injected via CredentialHasher.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/repository"
)

// CredentialHasher produces and verifies opaque password hashes.
type CredentialHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// Config carries the token-signing settings.
type Config struct {
	JWTSecret  string
	Issuer     string
	SessionTTL time.Duration
}

type Service struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   CredentialHasher
	cfg      Config
	logger   *zap.Logger
}

// LoginResult bundles what a successful login hands back to the caller.
type LoginResult struct {
	User    *domain.User    `json:"user"`
	Session *domain.Session `json:"session"`
	Token   string          `json:"token"`
}

func New(users repository.UserRepository, sessions repository.SessionRepository, hasher CredentialHasher, cfg Config, logger *zap.Logger) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates an account. The password is optional; when present it is
// hashed before the user is stored.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	var hash string
	if password != "" {
		var err error
		hash, err = s.hasher.Hash(password)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, "hashing credential", err)
		}
	}

	user, err := domain.NewUser(name, email, hash)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, user)
}

// Login verifies the credential for the given email and opens a session.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if user.HasPassword() && !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrUnauthorized
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(user.ID, session.ExpiresAt)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "signing token", err)
	}

	return &LoginResult{User: user, Session: session, Token: token}, nil
}

// RefreshSession extends a live session's TTL.
func (s *Service) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	if ttl <= 0 {
		ttl = s.cfg.SessionTTL
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	if err := s.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return session, nil
}

// RevokeSession ends a session (logout).
func (s *Service) RevokeSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *Service) signToken(userID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     s.cfg.Issuer,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
