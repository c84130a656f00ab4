// Package cache provides the render-result cache used by the CLI and HTTP
// API. Layout and assembly are pure and fast, so only the expensive
// external render step is cached: keys hash the assembled document plus
// the export options, and values are the produced PNG bytes.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DefaultTTL bounds how long a cached render stays valid.
const DefaultTTL = 24 * time.Hour

// Cache is the storage interface. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Hash returns the full SHA-256 hex digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey builds the cache key for a rendered document: the document
// hash combined with the export parameters that affect the output image.
func RenderKey(doc []byte, scale float64, border int) string {
	return fmt.Sprintf("render:%s:s%g:b%d", Hash(doc), scale, border)
}
