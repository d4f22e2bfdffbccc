package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when different users or sessions need separate cache
// namespaces over a shared backend.
//
// Example usage:
//
//	// Session-specific keys for private graphs
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
//
//	// Global keys for shared graphs
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for graph document caching.
func (k *ScopedKeyer) GraphKey(graphHash string) string {
	return k.prefix + k.inner.GraphKey(graphHash)
}

// QueryKey generates a prefixed key for query result caching.
func (k *ScopedKeyer) QueryKey(op, graphHash string, opts QueryKeyOpts) string {
	return k.prefix + k.inner.QueryKey(op, graphHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
