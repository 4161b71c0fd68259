package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"go-gin-gorm-shop/internal/domain"
)

// BcryptHasher hashes passwords with bcrypt; the hash string format is opaque
// to everything outside this type.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ValidationFailed("password too long", map[string]string{"Password": "max"})
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
