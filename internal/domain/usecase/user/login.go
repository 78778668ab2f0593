package user

import (
	"context"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
)

// Login verifies the password and issues a session token
func (u *UserUseCase) Login(ctx context.Context, req usecase.LoginRequest) (*usecase.AuthResult, error) {
	// Blank fields fall through: no user has an empty email and no hash matches ""
	user, err := u.userRepo.GetByEmail(ctx, entity.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	if err := u.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		u.logger.Warn("Login with wrong password", map[string]any{
			"userId": user.ID,
		})
		return nil, errs.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	u.logger.Info("User logged in", map[string]any{
		"userId": user.ID,
	})

	return &usecase.AuthResult{Token: token, User: user}, nil
}
