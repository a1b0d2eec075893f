// Package cache stores rendered thumbnails by content hash.
//
// A render is a pure function of the layer stack and the capture request,
// so the PNG bytes can be reused whenever both hash the same. Two backends
// are provided:
//
//   - [FileCache] keeps entries as files under a directory (the CLI uses
//     the user cache dir)
//   - [NullCache] stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer]; [DefaultKeyer] hashes its inputs so keys are
// fixed-length and filesystem safe.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the data for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// RenderKeyOpts are the capture parameters that change the output bytes.
type RenderKeyOpts struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Scale   float64 `json:"scale"`
	Version string  `json:"version"` // renderer version; bump to invalidate
}

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey keys a rendered PNG by the hash of its layer stack.
	RenderKey(stackHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey returns "render:<sha256>" over the stack hash and opts.
func (DefaultKeyer) RenderKey(stackHash string, opts RenderKeyOpts) string {
	return hashKey("render", stackHash, opts)
}
