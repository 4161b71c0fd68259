package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultRole is assigned when registration does not name a role.
	DefaultRole = "Customer"
	RoleAdmin   = "Admin"
)

// User is created once and never modified by the core.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
}

// NewUser builds a user with a fresh id. The hash must come from a PasswordHasher.
func NewUser(email, passwordHash, role string) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ValidationFailed("email is required", map[string]string{"Email": "required"})
	}
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// RehydrateUser rebuilds a stored user without re-checking invariants.
func RehydrateUser(id uuid.UUID, email, passwordHash, role string) *User {
	return &User{ID: id, Email: email, PasswordHash: passwordHash, Role: role}
}

// UserRepository persists users. Lookups return ErrNotFound when absent;
// Create returns a Conflict error when the email is already taken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u *User) error
}
