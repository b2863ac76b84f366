// Package cache provides the key/value store behind session revocation and lookup caching.
// Values are JSON encoded. Redis backs it in production; Memory is used when Redis is not configured.
package cache

import (
	"context"
	"time"
)

// Cache is a TTL key/value store.
type Cache interface {
	// Get decodes the value stored under key into dest. found is false on a miss.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	// Set stores value under key for ttl. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
