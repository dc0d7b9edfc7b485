// Package cache holds the read-through memo used by the public endpoints.
// Values are stored JSON encoded so every backend returns the same shapes.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with per-entry expiry.
type Cache interface {
	// Get decodes the value stored under key into dest. It reports false,
	// without error, when the key is missing or expired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}
