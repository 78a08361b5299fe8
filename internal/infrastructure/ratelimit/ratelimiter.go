package ratelimit

import (
	"context"
	"time"
)

// Config sets per-window request ceilings. A zero window is not enforced.
type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

// Limiter is the sliding-window rate limiter used by the HTTP middleware.
type Limiter interface {
	Allow(ctx context.Context, key string, cfg Config) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
