package core

import (
	"context"
	"time"
)

// Duration keeps time.Duration out of use-case signatures
type Duration time.Duration

const (
	Millisecond Duration = Duration(time.Millisecond)
	Second               = Duration(time.Second)
	Minute               = Duration(time.Minute)
)

// Std converts back to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TimeProvider is the clock seen by use cases, repositories and token issuing.
// Timestamps it returns are what gets persisted on users and transactions.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) Duration
	Sleep(d Duration)
	// WithTimeout bounds lock release and other cleanup work
	WithTimeout(ctx context.Context, timeout Duration) (context.Context, context.CancelFunc)
}
