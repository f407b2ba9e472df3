package port

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL semantics. Implementations must be
// safe for concurrent use. A miss is (nil, false, nil), not an error.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Ping(ctx context.Context) error
}
