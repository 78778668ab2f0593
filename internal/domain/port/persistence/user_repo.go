package persistence

import (
	"context"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail retrieves a user by (normalized) email
	// Used by the login flow
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has this email
	// - ErrDatabaseConnection: If database connection fails
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// EmailExists checks whether an account already uses the email
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	EmailExists(ctx context.Context, email string) (bool, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrEmailAlreadyRegistered: If the unique email index rejects the row
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// Update updates user information
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, user *entity.User) error

	// AdjustCredits changes the credit balance atomically by delta
	// Negative deltas only apply when the balance covers them
	// Returns the updated user on success
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrInsufficientCredits: If balance would become negative
	// - ErrDatabaseConnection: If database connection fails
	AdjustCredits(ctx context.Context, userID string, delta int64) (*entity.User, error)
}
