package repository

import (
	"context"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserLockRepository implements user locking functionality using GORM
type UserLockRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserLockRepository creates a new UserLockRepository instance
func NewUserLockRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserLockRepository {
	return &UserLockRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// AcquireLock takes the user's lock unless an unexpired one exists
func (r *UserLockRepository) AcquireLock(ctx context.Context, userID string, duration time.Duration) error {
	now := r.timeProvider.Now()
	expiresAt := now.Add(duration)

	// The upsert only overwrites an expired lock; a live lock leaves zero rows affected
	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO user_locks (user_id, locked_at, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET locked_at = EXCLUDED.locked_at,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = EXCLUDED.updated_at
		WHERE user_locks.expires_at <= ?`,
		userID, now, expiresAt, now, now,
		now,
	)

	if err := result.Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			return errs.ErrUserLocked
		}

		if isContextError(err) {
			r.logger.Warn("Context timeout acquiring lock", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
			return fmt.Errorf("lock acquisition timeout: %w", err)
		}

		r.logger.Error("Database error acquiring lock", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	if result.RowsAffected == 0 {
		return errs.ErrUserLocked
	}

	r.logger.Debug("Lock acquired", map[string]any{
		"user_id":    userID,
		"expires_at": expiresAt,
	})
	return nil
}

// ReleaseLock deletes the user's lock; a missing lock is not an error
func (r *UserLockRepository) ReleaseLock(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserLock{})

	// the lock expires on its own
	if result.Error != nil && isContextError(result.Error) {
		r.logger.Warn("Context timeout when releasing lock, lock will expire automatically", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil
	}

	if result.Error != nil {
		r.logger.Error("Failed to release lock", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return nil
}

// CleanupExpiredLocks removes all expired locks from the database
func (r *UserLockRepository) CleanupExpiredLocks(ctx context.Context) (int64, error) {
	now := r.timeProvider.Now()

	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.UserLock{})
	if result.Error != nil {
		r.logger.Error("Failed to clean up expired locks", map[string]any{
			"error": result.Error.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Expired locks removed", map[string]any{
			"locks_removed": result.RowsAffected,
		})
	}
	return result.RowsAffected, nil
}
