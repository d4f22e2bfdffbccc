// Package graph provides the causal graph model: directed acyclic graphs
// with latent-variable annotations, partially directed graphs, and the
// algorithms that operate on them - d-separation reachability, minimal
// d-separator search, orientation-rule completion, and consistent DAG
// extension.
//
// Node identity is the variable name. All query results that return node
// collections are sorted ascending, so repeated runs over the same graph are
// deterministic.
package graph
