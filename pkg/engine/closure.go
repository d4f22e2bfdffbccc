package engine

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/caugraph/caugraph/pkg/cache"
	"github.com/caugraph/caugraph/pkg/independence"
	"github.com/caugraph/caugraph/pkg/observability"
)

// assertionTuple is the cacheable form of an assertion, with events sorted
// and the smaller independent event first.
type assertionTuple struct {
	Event1 []string `json:"event1"`
	Event2 []string `json:"event2"`
	Event3 []string `json:"event3,omitempty"`
}

func toTuples(ind *independence.Independencies) []assertionTuple {
	out := make([]assertionTuple, 0, ind.Len())
	for _, a := range ind.Assertions() {
		e1 := a.Event1().Sorted()
		e2 := a.Event2().Sorted()
		if slices.Compare(e2, e1) < 0 {
			e1, e2 = e2, e1
		}
		out = append(out, assertionTuple{
			Event1: e1,
			Event2: e2,
			Event3: a.Event3().Sorted(),
		})
	}
	return out
}

func fromTuples(tuples []assertionTuple) (*independence.Independencies, error) {
	ind := independence.New()
	for _, t := range tuples {
		a, err := independence.NewAssertion(t.Event1, t.Event2, t.Event3)
		if err != nil {
			return nil, err
		}
		ind.Add(a)
	}
	return ind, nil
}

// IndependenciesHash computes the canonical hash of an assertion
// collection. Collections holding the same assertions hash identically
// regardless of insertion order or event side.
func IndependenciesHash(ind *independence.Independencies) (string, error) {
	tuples := toTuples(ind)
	encoded := make([]string, 0, len(tuples))
	for _, t := range tuples {
		data, err := encode(t)
		if err != nil {
			return "", err
		}
		encoded = append(encoded, string(data))
	}
	sort.Strings(encoded)
	return cache.Hash([]byte(strings.Join(encoded, "\n"))), nil
}

// ClosureWithCacheInfo computes the semi-graphoid closure of the given
// assertions with caching and returns cache hit info. Insertion order of the
// closure is not part of the contract; cached and fresh results are equal as
// sets.
func (r *Runner) ClosureWithCacheInfo(ctx context.Context, ind *independence.Independencies) (*independence.Independencies, bool, error) {
	hash, err := IndependenciesHash(ind)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.QueryKey(OpClosure, hash, cache.QueryKeyOpts{})

	start := time.Now()
	observability.Engine().OnQueryStart(ctx, OpClosure, hash)

	var tuples []assertionTuple
	if r.probe(ctx, key, &tuples) {
		if cached, err := fromTuples(tuples); err == nil {
			observability.Engine().OnQueryComplete(ctx, OpClosure, hash, time.Since(start), nil)
			return cached, true, nil
		}
	}

	closed := ind.Closure()
	observability.Engine().OnQueryComplete(ctx, OpClosure, hash, time.Since(start), nil)
	r.stash(ctx, key, toTuples(closed))

	r.Logger.Debug("computed closure",
		"inputs", ind.Len(),
		"assertions", closed.Len(),
		"duration", time.Since(start))
	return closed, false, nil
}

// Closure is a convenience wrapper that discards the cache hit info.
func (r *Runner) Closure(ctx context.Context, ind *independence.Independencies) (*independence.Independencies, error) {
	res, _, err := r.ClosureWithCacheInfo(ctx, ind)
	return res, err
}
