package database

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	domainErr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

// RetryConfig is the backoff policy for units of work that lose a
// serialization race or a connection
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // 0.0-1.0 of the backoff, added on top
}

// DefaultRetryConfig returns the policy used by credit mutations
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    5,
		RetryInterval: 100 * time.Millisecond,
		MaxInterval:   2 * time.Second,
		JitterFactor:  0.2,
	}
}

// SQLSTATEs worth another attempt
var retryableCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
	"53300": true, // too_many_connections
	"57P01": true, // admin_shutdown
}

// businessOutcomes are final answers even when they wrap driver text
var businessOutcomes = []error{
	domainErr.ErrInsufficientCredits,
	domainErr.ErrPaymentAlreadyProcessed,
	domainErr.ErrUserNotFound,
	domainErr.ErrTransactionNotFound,
	domainErr.ErrUnauthorizedAccess,
	context.Canceled,
	context.DeadlineExceeded,
}

// RetryOnTransientError runs operation until it succeeds, fails with a
// non-transient error, the attempts run out or ctx is done
func RetryOnTransientError(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	errorMapper *ErrorMapper,
	logger coreport.Logger,
) error {
	attempts := max(config.MaxRetries, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = operation(); err == nil {
			return nil
		}
		if !isTransientError(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		backoff := calculateBackoffWithJitter(attempt-1, config)
		logger.Warn("Transient database error, retrying", map[string]any{
			"attempt":     attempt,
			"max_retries": attempts,
			"error":       err.Error(),
			"retry_after": backoff.String(),
		})

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			logger.Warn("Retry abandoned", map[string]any{
				"attempt": attempt,
				"error":   ctx.Err().Error(),
			})
			return ctx.Err()
		}
	}

	logger.Error("Database operation failed after retries", map[string]any{
		"attempts": attempts,
		"error":    err.Error(),
	})

	if errorMapper != nil {
		return errorMapper.MapError(err, "retry")
	}
	return err
}

// calculateBackoffWithJitter doubles RetryInterval per attempt up to MaxInterval
func calculateBackoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.RetryInterval << uint(min(attempt, 30))
	if backoff <= 0 || backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		backoff += time.Duration(float64(backoff) * config.JitterFactor * rand.Float64())
	}
	return backoff
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	for _, outcome := range businessOutcomes {
		if errors.Is(err, outcome) {
			return false
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return retryableCodes[pgErr.Code] || strings.HasPrefix(pgErr.Code, "08")
	}

	// Errors that never reached the server only carry text
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"deadlock", "could not serialize", "sqlstate 40001", "sqlstate 40p01",
		"connection reset", "connection refused", "broken pipe", "i/o timeout",
		"server closed", "unexpected eof",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
