package persistence

import (
	"context"
	"time"
)

// UserLockRepository defines methods for managing user locks
// A lock guards a user's credit balance across processes
type UserLockRepository interface {
	// AcquireLock attempts to acquire a lock on the user for a balance mutation
	// The lock expires after the given duration
	//
	// Possible errors:
	// - ErrUserLocked: If user is already locked by another process
	// - ErrDatabaseConnection: If database connection fails
	AcquireLock(ctx context.Context, userID string, duration time.Duration) error

	// ReleaseLock releases a previously acquired lock
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ReleaseLock(ctx context.Context, userID string) error
}
