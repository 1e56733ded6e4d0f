package backend

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// throttle ensures a minimum interval between successive reloads.
type throttle struct {
	limiter *rate.Limiter
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// allow reports whether an operation may run right now without waiting.
func (t *throttle) allow() bool {
	return t.limiter.Allow()
}

// wait blocks until the next operation is permitted or ctx ends.
func (t *throttle) wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
