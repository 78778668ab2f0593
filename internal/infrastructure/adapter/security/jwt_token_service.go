package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/security"
)

// DefaultTokenTTL is how long a session token stays valid
const DefaultTokenTTL = time.Hour

// claims carries the user ID under "id"
type claims struct {
	UserID string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokenService signs HS256 session tokens
type JWTTokenService struct {
	secret       []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewJWTTokenService creates a token service; an empty secret is rejected
func NewJWTTokenService(secret string, ttl time.Duration, timeProvider coreport.TimeProvider) (*JWTTokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTTokenService{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
	}, nil
}

var _ security.TokenService = (*JWTTokenService)(nil)

// Issue signs a token carrying the user ID
func (s *JWTTokenService) Issue(userID string) (string, error) {
	now := s.timeProvider.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and returns the id claim
func (s *JWTTokenService) Parse(tokenString string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrInvalidToken, err.Error())
	}
	return c.UserID, nil
}
