package upstream

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

// BreakerConfig tunes a circuit breaker around one upstream API
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // allowed through while half-open
	Interval         time.Duration // closed-state count reset
	Timeout          time.Duration // open before trying half-open
	FailureThreshold uint32        // consecutive failures that open the circuit
}

// DefaultBreakerConfig returns the settings both payment and image clients start from
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      2,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// StateObserver is told about every breaker transition
type StateObserver func(name string, to gobreaker.State)

// NewBreaker builds a breaker that only counts failures the upstream is responsible for
func NewBreaker[T any](cfg BreakerConfig, logger coreport.Logger, observe StateObserver) *gobreaker.CircuitBreaker[T] {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: IsBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			if observe != nil {
				observe(name, to)
			}
		},
	})
}

// IsBreakerSuccess treats client errors, throttling included, as healthy upstream answers
func IsBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	if pe, ok := errs.AsProviderError(err); ok {
		return pe.StatusCode < http.StatusInternalServerError
	}
	return errors.Is(err, errs.ErrOrderNotFound) || errors.Is(err, errs.ErrEmptyImage)
}

// ClassifyTransportError maps a failed round trip onto the domain's upstream errors
// Errors that are not transport failures come back unchanged
func ClassifyTransportError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errs.ErrProviderUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrProviderTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.ErrProviderTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return errs.ErrProviderUnavailable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return errs.ErrProviderUnavailable
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return errs.ErrProviderUnavailable
	}

	return err
}
