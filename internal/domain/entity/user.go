package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

// User represents an account that spends credits on image generation
type User struct {
	ID            string    // Unique identifier for the user (uuid)
	Name          string    // Display name
	Email         string    // Lower-cased, unique
	PasswordHash  string    // bcrypt hash, never serialized
	creditBalance int64     // Remaining credits (private, never negative)
	CreatedAt     time.Time // When the user was created
	UpdatedAt     time.Time // When the user was last updated
}

// NewUser creates a new user with the given identity and starting credits
func NewUser(id, name, email, passwordHash string, initialCredits int64, timeProvider coreport.TimeProvider) (*User, error) {
	if id == "" {
		return nil, errs.ErrInvalidUserID
	}

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || passwordHash == "" {
		return nil, errs.ErrMissingDetails
	}

	if initialCredits < 0 {
		return nil, errs.ErrNegativeCredits
	}

	now := timeProvider.Now()
	return &User{
		ID:            id,
		Name:          name,
		Email:         email,
		PasswordHash:  passwordHash,
		creditBalance: initialCredits,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// HydrateUser rebuilds a stored user without validation
// Used by repositories when mapping rows back to entities
func HydrateUser(id, name, email, passwordHash string, credits int64, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:            id,
		Name:          name,
		Email:         email,
		PasswordHash:  passwordHash,
		creditBalance: credits,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreditBalance returns the remaining credits
func (u *User) CreditBalance() int64 {
	return u.creditBalance
}

// SetCreditBalance updates the balance directly (for internal use, like repositories)
func (u *User) SetCreditBalance(credits int64, timeProvider coreport.TimeProvider) {
	u.creditBalance = credits
	u.UpdatedAt = timeProvider.Now()
}

// HasCredits checks if the user can spend n credits
func (u *User) HasCredits(n int64) bool {
	return n > 0 && u.creditBalance >= n
}

// AddCredits increases the balance by n
func (u *User) AddCredits(n int64, timeProvider coreport.TimeProvider) error {
	if n < 0 {
		return errs.ErrNegativeCredits
	}

	u.creditBalance += n
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// ConsumeCredits subtracts n credits if the balance allows it
// Returns error if the balance is too low
func (u *User) ConsumeCredits(n int64, timeProvider coreport.TimeProvider) error {
	if n < 0 {
		return errs.ErrNegativeCredits
	}
	if u.creditBalance < n {
		return errs.NewInsufficientCreditsError(u.ID, n, u.creditBalance)
	}

	u.creditBalance -= n
	u.UpdatedAt = timeProvider.Now()
	return nil
}
