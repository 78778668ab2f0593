package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/imagify/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/imagify/mocks/port/persistence"
	mocksecurity "github.com/amirhossein-jamali/imagify/mocks/port/security"
)

type userFixture struct {
	userRepo *mockpersistence.MockUserRepository
	hasher   *mocksecurity.MockPasswordHasher
	tokens   *mocksecurity.MockTokenService
	clock    *mockcore.MockTimeProvider
	metrics  *mockcore.MockMetrics
	useCase  usecase.UserUseCase
}

func newUserFixture(t *testing.T) *userFixture {
	f := &userFixture{
		userRepo: mockpersistence.NewMockUserRepository(t),
		hasher:   mocksecurity.NewMockPasswordHasher(t),
		tokens:   mocksecurity.NewMockTokenService(t),
		clock:    mockcore.NewMockTimeProvider(t),
		metrics:  mockcore.NewMockMetrics(t),
	}
	f.clock.EXPECT().Now().Return(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)).Maybe()

	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	newID := func() string { return "u-1" }
	f.useCase = NewUserUseCase(f.userRepo, f.hasher, f.tokens, newID, 5, f.clock, logger, f.metrics)
	return f
}

func storedUser() *entity.User {
	return entity.HydrateUser("u-1", "Ada", "ada@example.com", "hashed", 5, time.Time{}, time.Time{})
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates user with sign-up grant", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().EmailExists(ctx, "ada@example.com").Return(false, nil).Once()
		f.hasher.EXPECT().Hash("secret").Return("hashed", nil).Once()
		f.userRepo.EXPECT().Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.ID == "u-1" && u.Email == "ada@example.com" && u.PasswordHash == "hashed" && u.CreditBalance() == 5
		})).Return(nil).Once()
		f.tokens.EXPECT().Issue("u-1").Return("jwt", nil).Once()
		f.metrics.EXPECT().UserRegistered().Once()

		result, err := f.useCase.Register(ctx, usecase.RegisterRequest{Name: " Ada ", Email: " Ada@Example.com", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "jwt", result.Token)
		assert.Equal(t, "Ada", result.User.Name)
		assert.Equal(t, int64(5), result.User.CreditBalance())
	})

	t.Run("Missing details", func(t *testing.T) {
		f := newUserFixture(t)

		for _, req := range []usecase.RegisterRequest{
			{Email: "ada@example.com", Password: "secret"},
			{Name: "Ada", Password: "secret"},
			{Name: "Ada", Email: "ada@example.com"},
		} {
			_, err := f.useCase.Register(ctx, req)
			assert.ErrorIs(t, err, errs.ErrMissingDetails)
		}
	})

	t.Run("Email already registered", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().EmailExists(ctx, "ada@example.com").Return(true, nil).Once()

		_, err := f.useCase.Register(ctx, usecase.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"})

		assert.ErrorIs(t, err, errs.ErrEmailAlreadyRegistered)
	})

	t.Run("Racing sign-up hits the unique index", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().EmailExists(ctx, "ada@example.com").Return(false, nil).Once()
		f.hasher.EXPECT().Hash("secret").Return("hashed", nil).Once()
		f.userRepo.EXPECT().Create(ctx, mock.Anything).Return(errs.ErrDuplicateUser).Once()

		_, err := f.useCase.Register(ctx, usecase.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"})

		assert.ErrorIs(t, err, errs.ErrEmailAlreadyRegistered)
	})

	t.Run("Hash failure", func(t *testing.T) {
		f := newUserFixture(t)
		hashErr := errors.New("bcrypt: cost out of range")
		f.userRepo.EXPECT().EmailExists(ctx, "ada@example.com").Return(false, nil).Once()
		f.hasher.EXPECT().Hash("secret").Return("", hashErr).Once()

		_, err := f.useCase.Register(ctx, usecase.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"})

		assert.ErrorIs(t, err, hashErr)
	})
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid credentials", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(storedUser(), nil).Once()
		f.hasher.EXPECT().Compare("hashed", "secret").Return(nil).Once()
		f.tokens.EXPECT().Issue("u-1").Return("jwt", nil).Once()

		result, err := f.useCase.Login(ctx, usecase.LoginRequest{Email: "ADA@example.com", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "jwt", result.Token)
		assert.Equal(t, "u-1", result.User.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(storedUser(), nil).Once()
		f.hasher.EXPECT().Compare("hashed", "nope").Return(errs.ErrInvalidCredentials).Once()

		_, err := f.useCase.Login(ctx, usecase.LoginRequest{Email: "ada@example.com", Password: "nope"})

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, errs.ErrUserNotFound).Once()

		_, err := f.useCase.Login(ctx, usecase.LoginRequest{Email: "ghost@example.com", Password: "secret"})

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Blank email is an unknown user", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().GetByEmail(ctx, "").Return(nil, errs.ErrUserNotFound).Once()

		_, err := f.useCase.Login(ctx, usecase.LoginRequest{Password: "secret"})

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Blank password is invalid credentials", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().GetByEmail(ctx, "ada@example.com").Return(storedUser(), nil).Once()
		f.hasher.EXPECT().Compare("hashed", "").Return(errors.New("mismatch")).Once()

		_, err := f.useCase.Login(ctx, usecase.LoginRequest{Email: "ada@example.com"})

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestUserUseCase_GetCredits(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns stored balance", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().GetByID(ctx, "u-1").Return(storedUser(), nil).Once()

		user, err := f.useCase.GetCredits(ctx, "u-1")

		require.NoError(t, err)
		assert.Equal(t, int64(5), user.CreditBalance())
	})

	t.Run("Empty user ID", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.useCase.GetCredits(ctx, "")

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("User not found", func(t *testing.T) {
		f := newUserFixture(t)
		f.userRepo.EXPECT().GetByID(ctx, "u-9").Return(nil, errs.ErrUserNotFound).Once()

		_, err := f.useCase.GetCredits(ctx, "u-9")

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
