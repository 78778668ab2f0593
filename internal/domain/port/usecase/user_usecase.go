package usecase

import (
	"context"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
)

// RegisterRequest carries the sign-up form
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginRequest carries the sign-in form
type LoginRequest struct {
	Email    string
	Password string
}

// AuthResult is returned by both sign-up and sign-in
type AuthResult struct {
	Token string
	User  *entity.User
}

// UserUseCase defines methods for user-related business operations
type UserUseCase interface {
	// Register creates an account with the sign-up credit grant and returns a session token
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)

	// Login checks the password and returns a session token
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)

	// GetCredits loads the user for the credits endpoint
	GetCredits(ctx context.Context, userID string) (*entity.User, error)
}
