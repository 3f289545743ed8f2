package domain

import (
	"strings"
	"time"
)

// User represents an account in the system. The email is the identity key
// for lookups and never changes after creation; the display name may.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser builds a validated user. The password hash is optional and opaque
// to this package.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidPayload
	}
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}, nil
}

func (u *User) HasPassword() bool {
	return u != nil && strings.TrimSpace(u.PasswordHash) != ""
}
