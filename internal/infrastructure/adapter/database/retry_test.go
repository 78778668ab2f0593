package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
)

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization", errors.New("could not serialize access due to concurrent update"), true},
		{"sqlstate 40001", errors.New("ERROR (SQLSTATE 40001)"), true},
		{"deadlock", errors.New("deadlock detected"), true},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"pg connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"wrapped pg serialization", fmt.Errorf("settle: %w", &pgconn.PgError{Code: "40001"}), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"duplicate key", errors.New("duplicate key value violates unique constraint"), false},
		{"insufficient credits", errs.NewInsufficientCreditsError("u-1", 1, 0), false},
		{"already processed wrapping driver text", fmt.Errorf("%w: deadlock", errs.ErrPaymentAlreadyProcessed), false},
		{"context canceled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransientError(tt.err))
		})
	}
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 10 * time.Millisecond, MaxInterval: 50 * time.Millisecond, JitterFactor: 0.5}

	first := calculateBackoffWithJitter(0, cfg)
	capped := calculateBackoffWithJitter(10, cfg)

	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.Less(t, first, 16*time.Millisecond)
	assert.GreaterOrEqual(t, capped, 50*time.Millisecond)
	assert.Less(t, capped, 76*time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, calculateBackoffWithJitter(40, RetryConfig{RetryInterval: time.Second, MaxInterval: 50 * time.Millisecond}))
}

func TestRetryOnTransientError_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := RetryOnTransientError(context.Background(), RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: time.Millisecond},
		func() error {
			calls++
			return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
		}, nil, logger.NewNoopLogger())

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnTransientError_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryOnTransientError(ctx, RetryConfig{MaxRetries: 5, RetryInterval: time.Second, MaxInterval: time.Second},
		func() error {
			calls++
			return errors.New("connection reset by peer")
		}, NewErrorMapper(), logger.NewNoopLogger())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
