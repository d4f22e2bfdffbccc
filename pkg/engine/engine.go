// Package engine provides cached execution of graph queries.
//
// This package implements the query layer shared by the CLI and the API.
// By centralizing caching and instrumentation here, both entry points get
// consistent behavior without duplicating logic.
//
// # Architecture
//
// A [Runner] wraps a cache backend and a key builder. Every query follows
// the same shape:
//
//  1. Hash the input graph
//  2. Probe the cache for a prior result
//  3. On a miss, run the algorithm and cache the result
//
// # Usage
//
// Create a Runner and run queries:
//
//	runner := engine.NewRunner(cache, nil, logger)
//	res, err := runner.MinimalSeparator(ctx, g, engine.SeparatorQuery{X: "A", Y: "D"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Found {
//	    fmt.Println(res.Separator)
//	}
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/caugraph/caugraph/pkg/cache"
	"github.com/caugraph/caugraph/pkg/graph"
	"github.com/caugraph/caugraph/pkg/graphio"
)

// Operation names used in cache keys and instrumentation.
const (
	OpTrails    = "trails"
	OpDSep      = "dsep"
	OpSeparator = "separator"
	OpOrient    = "orient"
	OpExtend    = "extend"
	OpClosure   = "closure"
	OpRender    = "render"
)

// Runner executes graph queries with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store query results. Multiple goroutines can safely use the same
// Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// GraphHash computes the canonical hash of a DAG, used in cache keys
// and API responses.
func GraphHash(d *graph.DAG) (string, error) {
	data, err := graphio.MarshalDAG(d)
	if err != nil {
		return "", fmt.Errorf("hash graph: %w", err)
	}
	return cache.Hash(data), nil
}

// PDAGHash computes the canonical hash of a PDAG.
func PDAGHash(p *graph.PDAG) (string, error) {
	data, err := graphio.MarshalPDAG(p)
	if err != nil {
		return "", fmt.Errorf("hash graph: %w", err)
	}
	return cache.Hash(data), nil
}

// encode serializes a cached query result.
func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// decode deserializes a cached query result.
func decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
