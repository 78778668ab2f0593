package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

// RealTimeProvider reads the wall clock in UTC at Postgres precision
type RealTimeProvider struct {
	loc *time.Location
}

// NewRealTimeProvider creates a UTC clock
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{loc: time.UTC}
}

// Now returns the current time truncated to microseconds, which is what a
// timestamp column keeps
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.loc).Truncate(time.Microsecond)
}

func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

func (p *RealTimeProvider) Sleep(d core.Duration) {
	time.Sleep(d.Std())
}

func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
