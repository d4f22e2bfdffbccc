package cache

import (
	"context"
	"time"
)

// NullCache discards everything. It serves the CLI's --no-cache flag and
// the "none" backend in configuration, so callers never branch on
// whether caching is enabled.
type NullCache struct{}

// NewNullCache creates a cache that never hits.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always reports a miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error {
	return nil
}

// Close does nothing.
func (NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = NullCache{}
