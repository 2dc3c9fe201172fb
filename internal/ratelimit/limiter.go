package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request from a given client key may
// proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, err error)
}

// SlidingWindowLimiter allows up to limit requests per key inside a
// sliding time window.
type SlidingWindowLimiter struct {
	store  Store
	limit  int64
	window time.Duration
}

// NewSlidingWindowLimiter creates a limiter over store.
func NewSlidingWindowLimiter(store Store, limit int64, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Record(ctx, key, l.window)
	if err != nil {
		return false, err
	}

	return count <= l.limit, nil
}
