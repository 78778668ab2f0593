package user

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
)

// Register creates a new account with the sign-up grant and signs the user in
func (u *UserUseCase) Register(ctx context.Context, req usecase.RegisterRequest) (*usecase.AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := entity.NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, errs.ErrMissingDetails
	}

	exists, err := u.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.ErrEmailAlreadyRegistered
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.logger.Error("Failed to hash password", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	user, err := entity.NewUser(u.newID(), name, email, hash, u.signupCredits, u.timeProvider)
	if err != nil {
		return nil, err
	}

	// the unique index still catches a racing sign-up with the same email
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, errs.ErrDuplicateUser) {
			return nil, errs.ErrEmailAlreadyRegistered
		}
		u.logger.Error("Failed to create user", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		u.logger.Error("Failed to issue token", map[string]any{
			"userId": user.ID,
			"error":  err.Error(),
		})
		return nil, err
	}

	u.metrics.UserRegistered()
	u.logger.Info("User registered", map[string]any{
		"userId":        user.ID,
		"signupCredits": u.signupCredits,
	})

	return &usecase.AuthResult{Token: token, User: user}, nil
}
