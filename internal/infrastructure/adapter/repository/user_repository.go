package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// getOperationType returns "credit" for positive changes and "debit" for negative ones
func getOperationType(delta int64) string {
	if delta >= 0 {
		return "credit"
	}
	return "debit"
}

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *UserRepository) modelToEntity(m *model.User) *entity.User {
	return entity.HydrateUser(m.ID, m.Name, m.Email, m.PasswordHash, m.CreditBalance, m.CreatedAt, m.UpdatedAt)
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate user operation", map[string]any{
			"user_id": userID,
		})
		return errs.ErrDuplicateUser
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return wrapDatabaseError(r.errorClassifier, err)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, id)
	}

	return r.modelToEntity(&m), nil
}

// GetByEmail retrieves a user by email, compared case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where("email = ?", entity.NormalizeEmail(email)).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting user by email", err, "")
	}

	return r.modelToEntity(&m), nil
}

// EmailExists reports whether an account uses the email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", entity.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking email", err, "")
	}

	return count > 0, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	m := model.User{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		CreditBalance: user.CreditBalance(),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return r.handleDatabaseError("creating user", err, user.ID)
	}

	r.logger.Info("User created successfully", map[string]any{
		"user_id":        user.ID,
		"credit_balance": user.CreditBalance(),
	})
	return nil
}

// Update writes the profile fields; credits only change through AdjustCredits
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"updated_at":    user.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error, user.ID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during update", map[string]any{
			"user_id": user.ID,
		})
		return errs.ErrUserNotFound
	}

	return nil
}

// AdjustCredits adds delta to the balance in one conditional update
// A debit only matches while credit_balance >= -delta, so the balance never goes negative
func (r *UserRepository) AdjustCredits(ctx context.Context, userID string, delta int64) (*entity.User, error) {
	r.logger.Debug("Adjusting credits", map[string]any{
		"user_id":        userID,
		"delta":          delta,
		"operation_type": getOperationType(delta),
	})

	query := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID)
	if delta < 0 {
		query = query.Where("credit_balance >= ?", -delta)
	}

	result := query.Updates(map[string]interface{}{
		"credit_balance": gorm.Expr("credit_balance + ?", delta),
		"updated_at":     r.timeProvider.Now(),
	})
	if result.Error != nil {
		return nil, r.handleDatabaseError("adjusting credits", result.Error, userID)
	}

	var m model.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("reading credits", err, userID)
	}

	if result.RowsAffected == 0 {
		r.logger.Info("Insufficient credits", map[string]any{
			"user_id":        userID,
			"needed":         -delta,
			"credit_balance": m.CreditBalance,
		})
		return nil, errs.NewInsufficientCreditsError(userID, -delta, m.CreditBalance)
	}

	r.logger.Info("Credits adjusted", map[string]any{
		"user_id":        userID,
		"delta":          delta,
		"operation_type": getOperationType(delta),
		"credit_balance": m.CreditBalance,
	})

	return r.modelToEntity(&m), nil
}
