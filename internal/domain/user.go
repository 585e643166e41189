package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULID represents a Universally Unique Lexicographically Sortable Identifier
// @Description A string representation of ULID
// @type string
// @format ulid
type ULID = ulid.ULID

// User represents an account of the credential store
type User struct {
	ID        ulid.ULID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new user instance. passwordHash must already be hashed.
func NewUser(userName, email, passwordHash, city string) *User {
	now := time.Now()
	return &User{
		ID:        ulid.Make(),
		UserName:  userName,
		Email:     email,
		Password:  passwordHash,
		City:      city,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id ulid.ULID) (*User, error)

	// FindByEmail finds a user by email. Returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CredentialStore looks up users by login identifier and verifies secrets
// against the stored hash.
type CredentialStore interface {
	// FindByEmail returns ErrUserNotFound when no user has the email
	FindByEmail(ctx context.Context, email string) (*User, error)
	VerifyPassword(user *User, password string) bool
}

// ParseULID parses a string into a ULID
func ParseULID(id string) (ulid.ULID, error) {
	parsedID, err := ulid.Parse(id)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("invalid ULID: %w", err)
	}
	return parsedID, nil
}
