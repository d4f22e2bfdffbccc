package engine

import (
	"bytes"
	"context"
	"time"

	"github.com/caugraph/caugraph/pkg/cache"
	"github.com/caugraph/caugraph/pkg/graph"
	"github.com/caugraph/caugraph/pkg/graphio"
	"github.com/caugraph/caugraph/pkg/observability"
)

// TrailsQuery selects the inputs for an active-trails computation.
type TrailsQuery struct {
	Variables      []string `json:"variables"`
	Observed       []string `json:"observed,omitempty"`
	IncludeLatents bool     `json:"include_latents,omitempty"`
}

// TrailsResult maps each query variable to the nodes it can reach along
// active trails.
type TrailsResult struct {
	Trails map[string][]string `json:"trails"`
}

// DSepQuery selects the inputs for a d-separation check.
type DSepQuery struct {
	X              string   `json:"x"`
	Y              string   `json:"y"`
	Observed       []string `json:"observed,omitempty"`
	IncludeLatents bool     `json:"include_latents,omitempty"`
}

// DSepResult reports whether two variables are d-connected.
type DSepResult struct {
	Connected bool `json:"connected"`
}

// SeparatorQuery selects the inputs for a minimal separator search.
type SeparatorQuery struct {
	X              string `json:"x"`
	Y              string `json:"y"`
	IncludeLatents bool   `json:"include_latents,omitempty"`
}

// SeparatorResult reports a minimal d-separating set, if one exists.
type SeparatorResult struct {
	Found     bool     `json:"found"`
	Separator []string `json:"separator,omitempty"`
}

// ActiveTrailsWithCacheInfo computes active trails with caching and returns
// cache hit info.
func (r *Runner) ActiveTrailsWithCacheInfo(ctx context.Context, g *graph.DAG, q TrailsQuery) (*TrailsResult, bool, error) {
	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.QueryKey(OpTrails, hash, cache.QueryKeyOpts{
		Variables:      q.Variables,
		Observed:       q.Observed,
		IncludeLatents: q.IncludeLatents,
	})

	start := time.Now()
	observability.Engine().OnQueryStart(ctx, OpTrails, hash)

	var cached TrailsResult
	if r.probe(ctx, key, &cached) {
		observability.Engine().OnQueryComplete(ctx, OpTrails, hash, time.Since(start), nil)
		return &cached, true, nil
	}

	trails, err := g.ActiveTrailNodes(q.Variables, q.Observed, q.IncludeLatents)
	observability.Engine().OnQueryComplete(ctx, OpTrails, hash, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	result := &TrailsResult{Trails: make(map[string][]string, len(trails))}
	for v, reached := range trails {
		result.Trails[v] = reached.Sorted()
	}
	r.stash(ctx, key, result)

	r.Logger.Debug("computed active trails",
		"variables", q.Variables,
		"duration", time.Since(start))
	return result, false, nil
}

// ActiveTrails is a convenience wrapper that discards the cache hit info.
func (r *Runner) ActiveTrails(ctx context.Context, g *graph.DAG, q TrailsQuery) (*TrailsResult, error) {
	res, _, err := r.ActiveTrailsWithCacheInfo(ctx, g, q)
	return res, err
}

// IsDConnectedWithCacheInfo checks d-connection with caching and returns
// cache hit info.
func (r *Runner) IsDConnectedWithCacheInfo(ctx context.Context, g *graph.DAG, q DSepQuery) (*DSepResult, bool, error) {
	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.QueryKey(OpDSep, hash, cache.QueryKeyOpts{
		X:              q.X,
		Y:              q.Y,
		Observed:       q.Observed,
		IncludeLatents: q.IncludeLatents,
	})

	start := time.Now()
	observability.Engine().OnQueryStart(ctx, OpDSep, hash)

	var cached DSepResult
	if r.probe(ctx, key, &cached) {
		observability.Engine().OnQueryComplete(ctx, OpDSep, hash, time.Since(start), nil)
		return &cached, true, nil
	}

	connected, err := g.IsDConnected(q.X, q.Y, q.Observed, q.IncludeLatents)
	observability.Engine().OnQueryComplete(ctx, OpDSep, hash, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	result := &DSepResult{Connected: connected}
	r.stash(ctx, key, result)

	r.Logger.Debug("checked d-connection",
		"x", q.X, "y", q.Y,
		"connected", connected,
		"duration", time.Since(start))
	return result, false, nil
}

// IsDConnected is a convenience wrapper that discards the cache hit info.
func (r *Runner) IsDConnected(ctx context.Context, g *graph.DAG, q DSepQuery) (*DSepResult, error) {
	res, _, err := r.IsDConnectedWithCacheInfo(ctx, g, q)
	return res, err
}

// MinimalSeparatorWithCacheInfo finds a minimal d-separator with caching
// and returns cache hit info.
func (r *Runner) MinimalSeparatorWithCacheInfo(ctx context.Context, g *graph.DAG, q SeparatorQuery) (*SeparatorResult, bool, error) {
	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.QueryKey(OpSeparator, hash, cache.QueryKeyOpts{
		X:              q.X,
		Y:              q.Y,
		IncludeLatents: q.IncludeLatents,
	})

	start := time.Now()
	observability.Engine().OnQueryStart(ctx, OpSeparator, hash)

	var cached SeparatorResult
	if r.probe(ctx, key, &cached) {
		observability.Engine().OnQueryComplete(ctx, OpSeparator, hash, time.Since(start), nil)
		return &cached, true, nil
	}

	sep, err := g.MinimalDSeparator(q.X, q.Y, q.IncludeLatents)
	observability.Engine().OnQueryComplete(ctx, OpSeparator, hash, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	result := &SeparatorResult{Found: sep != nil}
	if sep != nil {
		result.Separator = sep.Sorted()
	}
	r.stash(ctx, key, result)

	r.Logger.Debug("searched minimal separator",
		"x", q.X, "y", q.Y,
		"found", result.Found,
		"duration", time.Since(start))
	return result, false, nil
}

// MinimalSeparator is a convenience wrapper that discards the cache hit info.
func (r *Runner) MinimalSeparator(ctx context.Context, g *graph.DAG, q SeparatorQuery) (*SeparatorResult, error) {
	res, _, err := r.MinimalSeparatorWithCacheInfo(ctx, g, q)
	return res, err
}

// OrientWithCacheInfo runs the orientation rules with caching and returns
// cache hit info. The input PDAG is not modified.
func (r *Runner) OrientWithCacheInfo(ctx context.Context, p *graph.PDAG, applyR4 bool) (*graph.PDAG, bool, error) {
	hash, err := PDAGHash(p)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.QueryKey(OpOrient, hash, cache.QueryKeyOpts{ApplyR4: applyR4})

	start := time.Now()
	observability.Engine().OnQueryStart(ctx, OpOrient, hash)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if cached, err := graphio.ReadPDAG(bytes.NewReader(data)); err == nil {
			observability.Cache().OnCacheHit(ctx, "query")
			observability.Engine().OnQueryComplete(ctx, OpOrient, hash, time.Since(start), nil)
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "query")

	oriented := p.ApplyMeeksRules(applyR4, false)
	observability.Engine().OnQueryComplete(ctx, OpOrient, hash, time.Since(start), nil)

	if data, err := graphio.MarshalPDAG(oriented); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLQuery)
		observability.Cache().OnCacheSet(ctx, "query", len(data))
	}

	r.Logger.Debug("applied orientation rules",
		"apply_r4", applyR4,
		"duration", time.Since(start))
	return oriented, false, nil
}

// Orient is a convenience wrapper that discards the cache hit info.
func (r *Runner) Orient(ctx context.Context, p *graph.PDAG, applyR4 bool) (*graph.PDAG, error) {
	res, _, err := r.OrientWithCacheInfo(ctx, p, applyR4)
	return res, err
}

// ExtendWithCacheInfo computes a consistent DAG extension with caching and
// returns cache hit info. Extension failures are not cached.
func (r *Runner) ExtendWithCacheInfo(ctx context.Context, p *graph.PDAG) (*graph.DAG, bool, error) {
	hash, err := PDAGHash(p)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.QueryKey(OpExtend, hash, cache.QueryKeyOpts{})

	start := time.Now()
	observability.Engine().OnQueryStart(ctx, OpExtend, hash)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if cached, err := graphio.ReadDAG(bytes.NewReader(data)); err == nil {
			observability.Cache().OnCacheHit(ctx, "query")
			observability.Engine().OnQueryComplete(ctx, OpExtend, hash, time.Since(start), nil)
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "query")

	extended, err := p.ToDAG()
	observability.Engine().OnQueryComplete(ctx, OpExtend, hash, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := graphio.MarshalDAG(extended); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLQuery)
		observability.Cache().OnCacheSet(ctx, "query", len(data))
	}

	r.Logger.Debug("extended to DAG",
		"nodes", extended.NodeCount(),
		"edges", extended.EdgeCount(),
		"duration", time.Since(start))
	return extended, false, nil
}

// Extend is a convenience wrapper that discards the cache hit info.
func (r *Runner) Extend(ctx context.Context, p *graph.PDAG) (*graph.DAG, error) {
	res, _, err := r.ExtendWithCacheInfo(ctx, p)
	return res, err
}

// probe fetches and decodes a cached result, reporting hit/miss to the
// cache hooks. Decode failures count as misses.
func (r *Runner) probe(ctx context.Context, key string, v any) bool {
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if err := decode(data, v); err == nil {
			observability.Cache().OnCacheHit(ctx, "query")
			return true
		}
	}
	observability.Cache().OnCacheMiss(ctx, "query")
	return false
}

// stash encodes and caches a query result. Failures are ignored: caching
// is best effort.
func (r *Runner) stash(ctx context.Context, key string, v any) {
	if data, err := encode(v); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLQuery)
		observability.Cache().OnCacheSet(ctx, "query", len(data))
	}
}
