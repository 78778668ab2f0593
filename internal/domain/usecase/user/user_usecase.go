package user

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/security"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
)

// IDGenerator returns a new unique user ID
type IDGenerator func() string

// UserUseCase implements the user business logic
type UserUseCase struct {
	userRepo      persistence.UserRepository
	hasher        security.PasswordHasher
	tokens        security.TokenService
	newID         IDGenerator
	signupCredits int64
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
	metrics       coreport.Metrics
}

// NewUserUseCase creates a new user use case instance
func NewUserUseCase(
	userRepo persistence.UserRepository,
	hasher security.PasswordHasher,
	tokens security.TokenService,
	newID IDGenerator,
	signupCredits int64,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) usecase.UserUseCase {
	return &UserUseCase{
		userRepo:      userRepo,
		hasher:        hasher,
		tokens:        tokens,
		newID:         newID,
		signupCredits: signupCredits,
		timeProvider:  timeProvider,
		logger:        logger,
		metrics:       metrics,
	}
}

// GetCredits loads the user behind the credits endpoint
func (u *UserUseCase) GetCredits(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errs.ErrUserNotFound) {
			u.logger.Error("Failed to get user", map[string]any{
				"userId": userID,
				"error":  err.Error(),
			})
		}
		return nil, err
	}

	return user, nil
}
