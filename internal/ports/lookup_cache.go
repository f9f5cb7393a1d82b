package ports

import (
	"context"
	"time"
)

// Port: a generic external key -> value cache with per-entry expiry.
//
// It shields expensive external lookups (geocoding, routing, raw station
// records). An expired entry is never returned as a hit, and every write
// carries an explicit TTL.
type LookupCache interface {
	// Get returns the cached value and true on a hit. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A non-positive ttl is rejected.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
