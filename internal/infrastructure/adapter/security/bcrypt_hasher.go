package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/security"
)

// DefaultBcryptCost matches the salt rounds existing hashes were made with
const DefaultBcryptCost = 10

// BcryptHasher hashes passwords with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher; out-of-range costs fall back to the default
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

var _ security.PasswordHasher = (*BcryptHasher)(nil)

// Hash returns the bcrypt hash of password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare returns ErrInvalidCredentials when password does not match hash
func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return errs.ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %s", errs.ErrInvalidCredentials, err.Error())
	}
}
