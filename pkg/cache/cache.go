// Package cache stores rendered artifacts between CLI runs.
//
// Rendering a relationship graph to SVG runs Graphviz and is by far the
// slowest thing the CLI does. The graph command keys the rendered output by
// a hash of its DOT source, so re-rendering an unchanged package is a file
// read.
//
// Two implementations are provided: [FileCache] stores entries under a
// directory (the CLI uses $XDG_CACHE_HOME/opcpack) and [NullCache] stores
// nothing.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent or
	// its entry has expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
