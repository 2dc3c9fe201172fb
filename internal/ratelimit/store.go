package ratelimit

import (
	"context"
	"time"
)

// Store tracks request timestamps per key.
type Store interface {
	// Record registers a request for key and returns how many requests
	// fall inside the current window, pruning expired entries.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
