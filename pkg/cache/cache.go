// Package cache provides caching for graph documents, query results, and
// rendered artifacts.
//
// The [Cache] interface abstracts over storage backends: [FileCache] for
// local CLI usage, [RedisCache] for the server, and [NullCache] when caching
// is disabled. The [Keyer] interface builds deterministic cache keys from
// graph hashes and query parameters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// TTL constants for the different cached object classes.
const (
	// TTLGraph is how long stored graph documents stay cached.
	TTLGraph = 24 * time.Hour

	// TTLQuery is how long query results (separators, trails, closures) stay cached.
	TTLQuery = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (SVG, PNG, PDF) stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// keyClass extracts the leading segment of a cache key. Keys built by
// DefaultKeyer belong to one of three classes: graph, query, artifact.
func keyClass(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// DefaultTTL returns the retention for a key based on its class. Keys of
// an unrecognized class get the query retention.
func DefaultTTL(key string) time.Duration {
	switch keyClass(key) {
	case "graph":
		return TTLGraph
	case "artifact":
		return TTLArtifact
	default:
		return TTLQuery
	}
}

// Hash computes the SHA-256 hex digest used for graph and independency
// content hashes. The full 64-character digest is kept.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a class-prefixed key from the hashed parameters, for
// example query:dsep:<digest>.
func hashKey(class string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return class + ":" + Hash(data)
}

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss.
// Errors are reserved for backend failures, not misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// QueryKeyOpts captures the parameters that distinguish one graph query
// from another over the same graph.
type QueryKeyOpts struct {
	X              string
	Y              string
	Variables      []string
	Observed       []string
	IncludeLatents bool
	ApplyR4        bool
}

// ArtifactKeyOpts captures the parameters that distinguish rendered outputs.
type ArtifactKeyOpts struct {
	Format      string
	ShowWeights bool
	Scale       float64
}

// Keyer builds cache keys. Implementations must be deterministic: the same
// inputs always produce the same key.
type Keyer interface {
	// GraphKey generates a key for a serialized graph document.
	GraphKey(graphHash string) string

	// QueryKey generates a key for a query result over a graph.
	QueryKey(op, graphHash string, opts QueryKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes query and artifact parameters into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a serialized graph document.
func (k *DefaultKeyer) GraphKey(graphHash string) string {
	return "graph:" + graphHash
}

// QueryKey generates a key for a query result over a graph.
func (k *DefaultKeyer) QueryKey(op, graphHash string, opts QueryKeyOpts) string {
	return hashKey("query:"+op, graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
