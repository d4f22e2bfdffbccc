package graph

import (
	"fmt"
	"slices"
)

// DefaultWeight is recorded for edges added without an explicit weight.
const DefaultWeight = 1.0

// Edge is an ordered pair of node identifiers.
type Edge struct {
	From string
	To   string
}

type edgeKey struct{ from, to string }

// DAG is a directed acyclic graph over named variables. Nodes may be flagged
// latent (unobserved). The structure is append-only: nodes and edges can be
// added but never removed, which keeps ancestry queries free of
// dangling-reference concerns.
//
// AddEdge does not check for cycle introduction; the d-separation and
// separator algorithms assume acyclicity holds. The zero value is not
// usable - use NewDAG. A DAG is not safe for concurrent mutation; Copy
// produces a fully independent clone safe to use alongside the original.
type DAG struct {
	nodes    VarSet
	latents  VarSet
	parents  map[string]VarSet
	children map[string]VarSet
	weights  map[edgeKey]float64
}

// NewDAG creates an empty DAG.
func NewDAG() *DAG {
	return &DAG{
		nodes:    NewVarSet(),
		latents:  NewVarSet(),
		parents:  make(map[string]VarSet),
		children: make(map[string]VarSet),
		weights:  make(map[edgeKey]float64),
	}
}

// AddNode inserts a node. Re-adding an existing node is a no-op and does not
// change its latent flag - the first insertion wins.
func (d *DAG) AddNode(id string, latent bool) {
	if d.nodes.Has(id) {
		return
	}
	d.nodes.Add(id)
	d.parents[id] = NewVarSet()
	d.children[id] = NewVarSet()
	if latent {
		d.latents.Add(id)
	}
}

// AddNodesFrom inserts nodes in order. latentMask, when non-nil, must have
// the same length as ids and is applied positionally; nil means all
// non-latent.
func (d *DAG) AddNodesFrom(ids []string, latentMask []bool) error {
	if latentMask != nil && len(latentMask) != len(ids) {
		return fmt.Errorf("%w: %d nodes, %d latent flags", ErrLengthMismatch, len(ids), len(latentMask))
	}
	for i, id := range ids {
		d.AddNode(id, latentMask != nil && latentMask[i])
	}
	return nil
}

// AddEdge records the directed edge u→v with the default weight, inserting
// either endpoint as a non-latent node if absent. No cycle check is
// performed.
func (d *DAG) AddEdge(u, v string) { d.AddWeightedEdge(u, v, DefaultWeight) }

// AddWeightedEdge records the directed edge u→v carrying weight.
func (d *DAG) AddWeightedEdge(u, v string, weight float64) {
	d.AddNode(u, false)
	d.AddNode(v, false)
	d.children[u].Add(v)
	d.parents[v].Add(u)
	d.weights[edgeKey{u, v}] = weight
}

// AddEdgesFrom records the given edges with the default weight.
func (d *DAG) AddEdgesFrom(pairs []Edge) {
	for _, e := range pairs {
		d.AddEdge(e.From, e.To)
	}
}

// AddWeightedEdgesFrom records the given edges with positional weights.
// weights must have the same length as pairs.
func (d *DAG) AddWeightedEdgesFrom(pairs []Edge, weights []float64) error {
	if len(weights) != len(pairs) {
		return fmt.Errorf("%w: %d edges, %d weights", ErrLengthMismatch, len(pairs), len(weights))
	}
	for i, e := range pairs {
		d.AddWeightedEdge(e.From, e.To, weights[i])
	}
	return nil
}

// HasNode reports whether id is a known node.
func (d *DAG) HasNode(id string) bool { return d.nodes.Has(id) }

// IsLatent reports whether id is flagged latent. Unknown nodes are not latent.
func (d *DAG) IsLatent(id string) bool { return d.latents.Has(id) }

// Nodes returns all node identifiers in ascending order.
func (d *DAG) Nodes() []string { return d.nodes.Sorted() }

// Latents returns the latent node identifiers in ascending order.
func (d *DAG) Latents() []string { return d.latents.Sorted() }

// Edges returns all directed edges sorted by (From, To).
func (d *DAG) Edges() []Edge {
	out := make([]Edge, 0, len(d.weights))
	for k := range d.weights {
		out = append(out, Edge{From: k.from, To: k.to})
	}
	slices.SortFunc(out, compareEdges)
	return out
}

// NodeCount returns the number of nodes.
func (d *DAG) NodeCount() int { return d.nodes.Len() }

// EdgeCount returns the number of directed edges.
func (d *DAG) EdgeCount() int { return len(d.weights) }

// EdgeWeight returns the weight of edge u→v and whether the edge exists.
func (d *DAG) EdgeWeight(u, v string) (float64, bool) {
	w, ok := d.weights[edgeKey{u, v}]
	return w, ok
}

// HasEdge reports whether the directed edge u→v exists.
func (d *DAG) HasEdge(u, v string) bool {
	_, ok := d.weights[edgeKey{u, v}]
	return ok
}

// Parents returns the immediate parents of v in ascending order.
func (d *DAG) Parents(v string) ([]string, error) {
	if err := d.requireNode(v); err != nil {
		return nil, err
	}
	return d.parents[v].Sorted(), nil
}

// Children returns the immediate children of u in ascending order.
func (d *DAG) Children(u string) ([]string, error) {
	if err := d.requireNode(u); err != nil {
		return nil, err
	}
	return d.children[u].Sorted(), nil
}

// AreNeighbors reports whether a directed edge exists between u and v in
// either orientation.
func (d *DAG) AreNeighbors(u, v string) (bool, error) {
	if err := d.requireNode(u); err != nil {
		return false, err
	}
	if err := d.requireNode(v); err != nil {
		return false, err
	}
	return d.HasEdge(u, v) || d.HasEdge(v, u), nil
}

// AncestorsOf returns the union, over each target, of the target itself plus
// every node reachable by following parent edges transitively. Each target is
// a member of its own ancestor set.
func (d *DAG) AncestorsOf(targets ...string) (VarSet, error) {
	ancestors := NewVarSet()
	queue := make([]string, 0, len(targets))
	for _, t := range targets {
		if err := d.requireNode(t); err != nil {
			return nil, err
		}
		if !ancestors.Has(t) {
			ancestors.Add(t)
			queue = append(queue, t)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for p := range d.parents[cur] {
			if !ancestors.Has(p) {
				ancestors.Add(p)
				queue = append(queue, p)
			}
		}
	}
	return ancestors, nil
}

// AncestralGraph returns the subgraph induced on the ancestral closure of the
// given nodes: the ancestors (reflexive) and every edge running between them.
// Latent flags are preserved.
func (d *DAG) AncestralGraph(nodes ...string) (*DAG, error) {
	keep, err := d.AncestorsOf(nodes...)
	if err != nil {
		return nil, err
	}
	out := NewDAG()
	for id := range keep {
		out.AddNode(id, d.latents.Has(id))
	}
	for k, w := range d.weights {
		if keep.Has(k.from) && keep.Has(k.to) {
			out.AddWeightedEdge(k.from, k.to, w)
		}
	}
	return out, nil
}

// Moralize returns the moral graph: the skeleton of the DAG with an
// undirected edge added between every pair of parents sharing a common
// child. The result is a PDAG containing only undirected edges.
func (d *DAG) Moralize() *PDAG {
	moral := NewPDAG()
	for id := range d.nodes {
		moral.AddNode(id, d.latents.Has(id))
	}
	for k := range d.weights {
		if !moral.HasUndirectedEdge(k.from, k.to) {
			_ = moral.AddEdge(k.from, k.to, false)
		}
	}
	for child := range d.nodes {
		ps := d.parents[child].Sorted()
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				if !moral.HasUndirectedEdge(ps[i], ps[j]) {
					_ = moral.AddEdge(ps[i], ps[j], false)
				}
			}
		}
	}
	return moral
}

// AllSimplePaths enumerates every simple directed path from x to y. Paths
// are returned as node sequences beginning with x and ending with y, in a
// deterministic order.
func (d *DAG) AllSimplePaths(x, y string) ([][]string, error) {
	if err := d.requireNode(x); err != nil {
		return nil, err
	}
	if err := d.requireNode(y); err != nil {
		return nil, err
	}
	var paths [][]string
	onPath := NewVarSet()
	var walk func(cur string, path []string)
	walk = func(cur string, path []string) {
		if cur == y {
			paths = append(paths, slices.Clone(path))
			return
		}
		for _, next := range d.children[cur].Sorted() {
			if onPath.Has(next) {
				continue
			}
			onPath.Add(next)
			walk(next, append(path, next))
			delete(onPath, next)
		}
	}
	onPath.Add(x)
	walk(x, []string{x})
	return paths, nil
}

// Copy returns an independent deep clone sharing no mutable state with the
// receiver.
func (d *DAG) Copy() *DAG {
	out := NewDAG()
	out.nodes = d.nodes.Clone()
	out.latents = d.latents.Clone()
	for id, set := range d.parents {
		out.parents[id] = set.Clone()
	}
	for id, set := range d.children {
		out.children[id] = set.Clone()
	}
	for k, w := range d.weights {
		out.weights[k] = w
	}
	return out
}

func (d *DAG) requireNode(id string) error {
	if !d.nodes.Has(id) {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return nil
}

func compareEdges(a, b Edge) int {
	if a.From != b.From {
		if a.From < b.From {
			return -1
		}
		return 1
	}
	switch {
	case a.To < b.To:
		return -1
	case a.To > b.To:
		return 1
	default:
		return 0
	}
}
