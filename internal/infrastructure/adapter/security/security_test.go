package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	mockcore "github.com/amirhossein-jamali/imagify/mocks/port/core"
)

func clockAt(t *testing.T, now time.Time) *mockcore.MockTimeProvider {
	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(now).Maybe()
	return clock
}

func TestJWTTokenService(t *testing.T) {
	issued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Round trip", func(t *testing.T) {
		svc, err := NewJWTTokenService("s3cret", time.Hour, clockAt(t, issued))
		require.NoError(t, err)

		token, err := svc.Issue("u-1")
		require.NoError(t, err)

		id, err := svc.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", id)
	})

	t.Run("Expired token", func(t *testing.T) {
		issuer, _ := NewJWTTokenService("s3cret", time.Hour, clockAt(t, issued))
		token, err := issuer.Issue("u-1")
		require.NoError(t, err)

		later, _ := NewJWTTokenService("s3cret", time.Hour, clockAt(t, issued.Add(2*time.Hour)))
		_, err = later.Parse(token)

		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		issuer, _ := NewJWTTokenService("one", time.Hour, clockAt(t, issued))
		token, _ := issuer.Issue("u-1")

		other, _ := NewJWTTokenService("two", time.Hour, clockAt(t, issued))
		_, err := other.Parse(token)

		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("Token without id", func(t *testing.T) {
		svc, _ := NewJWTTokenService("s3cret", time.Hour, clockAt(t, issued))
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": issued.Add(time.Hour).Unix(),
		}).SignedString([]byte("s3cret"))
		require.NoError(t, err)

		id, err := svc.Parse(raw)

		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("Unsigned token is rejected", func(t *testing.T) {
		svc, _ := NewJWTTokenService("s3cret", time.Hour, clockAt(t, issued))
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "u-1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Parse(raw)

		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		svc, _ := NewJWTTokenService("s3cret", time.Hour, clockAt(t, issued))
		_, err := svc.Parse("not-a-token")
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("Secret is required", func(t *testing.T) {
		_, err := NewJWTTokenService("", time.Hour, clockAt(t, issued))
		assert.Error(t, err)
	})
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, h.Compare(hash, "hunter2"))
	assert.ErrorIs(t, h.Compare(hash, "hunter3"), errs.ErrInvalidCredentials)
	assert.ErrorIs(t, h.Compare("not-a-hash", "hunter2"), errs.ErrInvalidCredentials)

	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
}
