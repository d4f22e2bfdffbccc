// Package pkg provides the core libraries for caugraph causal-graph analysis.
//
// # Overview
//
// Caugraph answers structural queries over causal graphical models: which
// variables are d-separated, which sets block a dependence, how a partially
// directed graph orients, and whether a causal effect is identifiable. The
// pkg directory is organized into four main areas:
//
//  1. [graph] - Graph structures and algorithms (DAG, PDAG, d-separation,
//     minimal separators, Meek's rules, consistent extensions)
//  2. [independence] - Conditional independence assertions and their
//     semi-graphoid closure
//  3. [causal] - Role-annotated models and identification criteria
//     (backdoor, frontdoor)
//  4. [engine] - Cached query execution shared by CLI and API
//
// # Architecture
//
// The typical data flow through caugraph:
//
//	JSON graph document
//	         ↓
//	    [graphio] package (decode and validate)
//	         ↓
//	    [graph] package (structure + query algorithms)
//	         ↓
//	    [engine] package (caching + observability)
//	         ↓
//	    JSON / DOT / SVG / PDF / PNG output
//
// # Main Packages
//
// [graph] - Directed acyclic graphs with latent-variable marking, plus
// partially directed graphs. Implements Bayes-ball reachability for
// d-separation, minimal d-separator search over the moralized ancestral
// graph, Meek's orientation rules R1-R4, and Dor-Tarsi consistent
// extension.
//
// [independence] - Conditional independence assertions with symmetry-aware
// equality, semi-graphoid closure (decomposition, weak union, contraction),
// reduction to a minimal generating set, and entailment checks.
//
// [causal] - Models layering exposure/outcome/adjustment roles over a DAG,
// with backdoor adjustment validation and frontdoor set search.
//
// [graphio] - JSON document form for graphs, shared by the CLI, the HTTP
// API, and the store.
//
// [engine] - Runner combining the graph algorithms with content-addressed
// caching ([cache]) and hook-based instrumentation ([observability]).
//
// [render] - DOT generation and Graphviz-backed SVG/PDF/PNG conversion.
//
// [store] - Persistence for named graph documents with memory, file, and
// MongoDB backends.
//
// [cache] - Cache interface with null, file, and Redis implementations,
// plus key derivation from graph content hashes.
//
// [config] - TOML configuration for cache, store, and server backends.
//
// [errors] - Machine-readable error codes shared by the API and CLI.
//
// [graph]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/graph
// [independence]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/independence
// [causal]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/causal
// [graphio]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/graphio
// [engine]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/engine
// [render]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/render
// [store]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/store
// [cache]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/caugraph/caugraph/pkg/observability
package pkg
