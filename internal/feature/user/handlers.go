// Package user implements registration and login.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/core/dispatch"
	"go-gin-gorm-shop/internal/domain"
)

type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(pw, hash string) bool
}

type TokenIssuer interface {
	GenerateToken(u *domain.User) (string, error)
}

// errInvalidCredentials is shared by the unknown-email and wrong-password
// branches so callers cannot tell them apart.
const errInvalidCredentials = "invalid credentials"

type Handlers struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    *zap.Logger
}

func NewHandlers(users domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer, l *zap.Logger) *Handlers {
	if l == nil {
		l = zap.NewNop()
	}
	return &Handlers{users: users, hasher: hasher, tokens: tokens, log: l}
}

// Register adds the handlers to d.
func (h *Handlers) Register(d *dispatch.Dispatcher) {
	dispatch.Register(d, h.HandleRegister)
	dispatch.Register(d, h.HandleLogin)
}

// HandleRegister accepts any role string; blank means domain.DefaultRole.
// TODO: restrict self-registration to an allow-list once the roles are settled.
func (h *Handlers) HandleRegister(ctx context.Context, cmd RegisterCommand) (uuid.UUID, error) {
	_, err := h.users.FindByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		return uuid.Nil, domain.Conflict("user already exists")
	case !errors.Is(err, domain.ErrNotFound):
		return uuid.Nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return uuid.Nil, err
	}

	role := cmd.Role
	if strings.TrimSpace(role) == "" {
		role = domain.DefaultRole
	}
	u, err := domain.NewUser(cmd.Email, hash, role)
	if err != nil {
		return uuid.Nil, err
	}
	// a concurrent registration can still win here; the unique index
	// turns it into the same Conflict
	if err := h.users.Create(ctx, u); err != nil {
		return uuid.Nil, err
	}

	h.log.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return u.ID, nil
}

func (h *Handlers) HandleLogin(ctx context.Context, cmd LoginCommand) (string, error) {
	u, err := h.users.FindByEmail(ctx, cmd.Email)
	if errors.Is(err, domain.ErrNotFound) {
		h.log.Warn("login rejected")
		return "", domain.Unauthorized(errInvalidCredentials)
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !h.hasher.Verify(cmd.Password, u.PasswordHash) {
		h.log.Warn("login rejected")
		return "", domain.Unauthorized(errInvalidCredentials)
	}

	tok, err := h.tokens.GenerateToken(u)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}
