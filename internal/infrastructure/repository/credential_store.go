package repository

import (
	"context"

	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/ipede/freecourse-services/internal/infrastructure/password"
)

// UserFinder is the part of the user repository the credential store needs
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CredentialStore adapts the user repository and bcrypt verification to
// domain.CredentialStore
type CredentialStore struct {
	users UserFinder
}

func NewCredentialStore(users UserFinder) *CredentialStore {
	return &CredentialStore{users: users}
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// VerifyPassword checks password against the user's stored bcrypt hash
func (s *CredentialStore) VerifyPassword(user *domain.User, plain string) bool {
	if user == nil || user.Password == "" {
		return false
	}
	return password.Matches(plain, user.Password)
}
