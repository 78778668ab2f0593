package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/imagify/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser("u-1", " Ada ", " Ada@Example.COM ", "hash", 5, mockTime)

		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, "Ada", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, int64(5), user.CreditBalance())
		assert.Equal(t, fixedTime, user.CreatedAt)
		assert.Equal(t, fixedTime, user.UpdatedAt)
	})

	t.Run("Empty ID should return error", func(t *testing.T) {
		user, err := NewUser("", "Ada", "ada@example.com", "hash", 5, mockTime)

		assert.Equal(t, errs.ErrInvalidUserID, err)
		assert.Nil(t, user)
	})

	t.Run("Missing details", func(t *testing.T) {
		testCases := []struct {
			name, userName, email, hash string
		}{
			{"no name", "  ", "ada@example.com", "hash"},
			{"no email", "Ada", "", "hash"},
			{"no password", "Ada", "ada@example.com", ""},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				user, err := NewUser("u-1", tc.userName, tc.email, tc.hash, 5, mockTime)
				assert.ErrorIs(t, err, errs.ErrMissingDetails)
				assert.Nil(t, user)
			})
		}
	})

	t.Run("Negative grant", func(t *testing.T) {
		user, err := NewUser("u-1", "Ada", "ada@example.com", "hash", -1, mockTime)

		assert.ErrorIs(t, err, errs.ErrNegativeCredits)
		assert.Nil(t, user)
	})
}

func TestUserCredits(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	laterTime := createdAt.Add(time.Hour)

	newUser := func(t *testing.T, credits int64) *User {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(createdAt).Once()
		user, err := NewUser("u-1", "Ada", "ada@example.com", "hash", credits, mockTime)
		require.NoError(t, err)
		return user
	}

	t.Run("ConsumeCredits decrements by exactly n", func(t *testing.T) {
		user := newUser(t, 5)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(laterTime).Once()

		err := user.ConsumeCredits(1, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(4), user.CreditBalance())
		assert.Equal(t, laterTime, user.UpdatedAt)
	})

	t.Run("ConsumeCredits with empty balance", func(t *testing.T) {
		user := newUser(t, 0)
		mockTime := coremocks.NewMockTimeProvider(t)

		err := user.ConsumeCredits(1, mockTime)

		assert.ErrorIs(t, err, errs.ErrInsufficientCredits)
		assert.Equal(t, int64(0), user.CreditBalance())
		assert.Equal(t, createdAt, user.UpdatedAt)
	})

	t.Run("AddCredits", func(t *testing.T) {
		user := newUser(t, 5)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(laterTime).Once()

		require.NoError(t, user.AddCredits(100, mockTime))
		assert.Equal(t, int64(105), user.CreditBalance())

		assert.ErrorIs(t, user.AddCredits(-1, mockTime), errs.ErrNegativeCredits)
	})

	t.Run("HasCredits", func(t *testing.T) {
		user := newUser(t, 1)

		assert.True(t, user.HasCredits(1))
		assert.False(t, user.HasCredits(2))
		assert.False(t, user.HasCredits(0))
	})

	t.Run("UserToCreditsResponse", func(t *testing.T) {
		user := newUser(t, 7)

		resp := UserToCreditsResponse(user)

		assert.True(t, resp.Success)
		assert.Equal(t, int64(7), resp.Credits)
		assert.Equal(t, "Ada", resp.User.Name)
	})
}
