// Package cache provides pluggable storage for feed response caching.
//
// Backends: file (default for CLI use), redis, mongo, and null (caching
// disabled). All backends store opaque byte payloads under string keys with
// an optional TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores byte payloads under string keys with optional expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the payload for key. The second return value reports
	// whether the key was found; an expired or missing entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Hash computes a SHA-256 hash of data as a 64-character hex string.
// Used to derive filesystem-safe cache keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
