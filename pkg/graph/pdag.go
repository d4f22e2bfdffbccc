package graph

import (
	"fmt"
	"slices"
)

// PDAG is a partially directed acyclic graph: a mix of directed and
// undirected edges over named variables, the working representation for
// equivalence-class reasoning. Directed edge insertion rejects cycles among
// the directed edges; undirected edges carry no orientation until
// OrientUndirectedEdge or the orientation rules commit one.
//
// Undirected edges are stored once under a canonical (low, high) key but are
// reported in both directions by Edges and counted twice by EdgeCount.
type PDAG struct {
	nodes      VarSet
	latents    VarSet
	dparents   map[string]VarSet
	dchildren  map[string]VarSet
	uneighbors map[string]VarSet
	dweights   map[edgeKey]float64
	uweights   map[edgeKey]float64
}

// NewPDAG creates an empty PDAG.
func NewPDAG() *PDAG {
	return &PDAG{
		nodes:      NewVarSet(),
		latents:    NewVarSet(),
		dparents:   make(map[string]VarSet),
		dchildren:  make(map[string]VarSet),
		uneighbors: make(map[string]VarSet),
		dweights:   make(map[edgeKey]float64),
		uweights:   make(map[edgeKey]float64),
	}
}

// AddNode inserts a node. Re-adding an existing node is a no-op and does not
// change its latent flag.
func (p *PDAG) AddNode(id string, latent bool) {
	if p.nodes.Has(id) {
		return
	}
	p.nodes.Add(id)
	p.dparents[id] = NewVarSet()
	p.dchildren[id] = NewVarSet()
	p.uneighbors[id] = NewVarSet()
	if latent {
		p.latents.Add(id)
	}
}

// AddNodesFrom inserts nodes in order, with positional latent flags as in
// DAG.AddNodesFrom.
func (p *PDAG) AddNodesFrom(ids []string, latentMask []bool) error {
	if latentMask != nil && len(latentMask) != len(ids) {
		return fmt.Errorf("%w: %d nodes, %d latent flags", ErrLengthMismatch, len(ids), len(latentMask))
	}
	for i, id := range ids {
		p.AddNode(id, latentMask != nil && latentMask[i])
	}
	return nil
}

// AddEdge records an edge between u and v with the default weight. When
// directed is true the edge is u→v and the insertion fails with ErrCycle if
// the directed part of the graph already admits a path v⇒u.
func (p *PDAG) AddEdge(u, v string, directed bool) error {
	return p.AddWeightedEdge(u, v, DefaultWeight, directed)
}

// AddWeightedEdge records an edge carrying weight, inserting missing
// endpoints as non-latent nodes.
func (p *PDAG) AddWeightedEdge(u, v string, weight float64, directed bool) error {
	p.AddNode(u, false)
	p.AddNode(v, false)
	if directed {
		if u == v || p.HasDirectedPath(v, u) {
			return fmt.Errorf("%w: adding %s -> %s", ErrCycle, u, v)
		}
		p.dchildren[u].Add(v)
		p.dparents[v].Add(u)
		p.dweights[edgeKey{u, v}] = weight
		return nil
	}
	p.uneighbors[u].Add(v)
	p.uneighbors[v].Add(u)
	p.uweights[undirectedKey(u, v)] = weight
	return nil
}

// AddEdgesFrom records the given edges, all directed or all undirected, with
// the default weight.
func (p *PDAG) AddEdgesFrom(pairs []Edge, directed bool) error {
	for _, e := range pairs {
		if err := p.AddEdge(e.From, e.To, directed); err != nil {
			return err
		}
	}
	return nil
}

// AddWeightedEdgesFrom records the given edges with positional weights.
func (p *PDAG) AddWeightedEdgesFrom(pairs []Edge, weights []float64, directed bool) error {
	if len(weights) != len(pairs) {
		return fmt.Errorf("%w: %d edges, %d weights", ErrLengthMismatch, len(pairs), len(weights))
	}
	for i, e := range pairs {
		if err := p.AddWeightedEdge(e.From, e.To, weights[i], directed); err != nil {
			return err
		}
	}
	return nil
}

// HasNode reports whether id is a known node.
func (p *PDAG) HasNode(id string) bool { return p.nodes.Has(id) }

// IsLatent reports whether id is flagged latent.
func (p *PDAG) IsLatent(id string) bool { return p.latents.Has(id) }

// Nodes returns all node identifiers in ascending order.
func (p *PDAG) Nodes() []string { return p.nodes.Sorted() }

// Latents returns the latent node identifiers in ascending order.
func (p *PDAG) Latents() []string { return p.latents.Sorted() }

// NodeCount returns the number of nodes.
func (p *PDAG) NodeCount() int { return p.nodes.Len() }

// EdgeCount returns the number of edge entries as reported by Edges: each
// directed edge counts once, each undirected edge twice.
func (p *PDAG) EdgeCount() int { return len(p.dweights) + 2*len(p.uweights) }

// Edges returns every directed edge once and every undirected edge in both
// directions, sorted by (From, To).
func (p *PDAG) Edges() []Edge {
	out := make([]Edge, 0, p.EdgeCount())
	for k := range p.dweights {
		out = append(out, Edge{From: k.from, To: k.to})
	}
	for k := range p.uweights {
		out = append(out, Edge{From: k.from, To: k.to}, Edge{From: k.to, To: k.from})
	}
	slices.SortFunc(out, compareEdges)
	return out
}

// DirectedEdges returns the directed edges sorted by (From, To).
func (p *PDAG) DirectedEdges() []Edge {
	out := make([]Edge, 0, len(p.dweights))
	for k := range p.dweights {
		out = append(out, Edge{From: k.from, To: k.to})
	}
	slices.SortFunc(out, compareEdges)
	return out
}

// UndirectedEdges returns one entry per undirected edge with From < To,
// sorted.
func (p *PDAG) UndirectedEdges() []Edge {
	out := make([]Edge, 0, len(p.uweights))
	for k := range p.uweights {
		out = append(out, Edge{From: k.from, To: k.to})
	}
	slices.SortFunc(out, compareEdges)
	return out
}

// DirectedEdgeWeight returns the weight of the directed edge u→v and
// whether the edge exists.
func (p *PDAG) DirectedEdgeWeight(u, v string) (float64, bool) {
	w, ok := p.dweights[edgeKey{u, v}]
	return w, ok
}

// UndirectedEdgeWeight returns the weight of the undirected edge u–v and
// whether the edge exists. Argument order does not matter.
func (p *PDAG) UndirectedEdgeWeight(u, v string) (float64, bool) {
	w, ok := p.uweights[undirectedKey(u, v)]
	return w, ok
}

// HasDirectedEdge reports whether the directed edge u→v exists.
func (p *PDAG) HasDirectedEdge(u, v string) bool {
	_, ok := p.dweights[edgeKey{u, v}]
	return ok
}

// HasUndirectedEdge reports whether an undirected edge joins u and v.
func (p *PDAG) HasUndirectedEdge(u, v string) bool {
	_, ok := p.uweights[undirectedKey(u, v)]
	return ok
}

// IsAdjacent reports whether any edge joins u and v.
func (p *PDAG) IsAdjacent(u, v string) bool {
	return p.HasDirectedEdge(u, v) || p.HasDirectedEdge(v, u) || p.HasUndirectedEdge(u, v)
}

// AllNeighbors returns every node joined to id by any edge, in ascending
// order.
func (p *PDAG) AllNeighbors(id string) ([]string, error) {
	if err := p.requireNode(id); err != nil {
		return nil, err
	}
	all := p.dparents[id].Union(p.dchildren[id]).Union(p.uneighbors[id])
	return all.Sorted(), nil
}

// DirectedChildren returns the heads of directed edges leaving id, in
// ascending order.
func (p *PDAG) DirectedChildren(id string) ([]string, error) {
	if err := p.requireNode(id); err != nil {
		return nil, err
	}
	return p.dchildren[id].Sorted(), nil
}

// DirectedParents returns the tails of directed edges entering id, in
// ascending order.
func (p *PDAG) DirectedParents(id string) ([]string, error) {
	if err := p.requireNode(id); err != nil {
		return nil, err
	}
	return p.dparents[id].Sorted(), nil
}

// UndirectedNeighbors returns the nodes joined to id by undirected edges, in
// ascending order.
func (p *PDAG) UndirectedNeighbors(id string) ([]string, error) {
	if err := p.requireNode(id); err != nil {
		return nil, err
	}
	return p.uneighbors[id].Sorted(), nil
}

// HasDirectedPath reports whether v is reachable from u along directed edges
// only. By convention every node reaches itself.
func (p *PDAG) HasDirectedPath(u, v string) bool {
	if u == v {
		return p.nodes.Has(u)
	}
	seen := NewVarSet()
	seen.Add(u)
	queue := []string{u}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for c := range p.dchildren[cur] {
			if c == v {
				return true
			}
			if !seen.Has(c) {
				seen.Add(c)
				queue = append(queue, c)
			}
		}
	}
	return false
}

// OrientUndirectedEdge commits the undirected edge u–v to the directed edge
// u→v, preserving its weight. It fails with ErrAlreadyOriented when no
// undirected edge joins u and v, so re-orienting a committed edge is an
// error. With inplace true the receiver is mutated and returned; otherwise
// the receiver is left untouched and an oriented copy is returned.
func (p *PDAG) OrientUndirectedEdge(u, v string, inplace bool) (*PDAG, error) {
	if err := p.requireNode(u); err != nil {
		return nil, err
	}
	if err := p.requireNode(v); err != nil {
		return nil, err
	}
	if !p.HasUndirectedEdge(u, v) {
		return nil, fmt.Errorf("%w: no undirected edge %s - %s", ErrAlreadyOriented, u, v)
	}
	target := p
	if !inplace {
		target = p.Copy()
	}
	target.orient(u, v)
	return target, nil
}

// orient converts the undirected edge u–v into u→v. The edge must exist.
func (p *PDAG) orient(u, v string) {
	key := undirectedKey(u, v)
	w := p.uweights[key]
	delete(p.uweights, key)
	delete(p.uneighbors[u], v)
	delete(p.uneighbors[v], u)
	p.dchildren[u].Add(v)
	p.dparents[v].Add(u)
	p.dweights[edgeKey{u, v}] = w
}

// removeNode deletes id and every edge touching it.
func (p *PDAG) removeNode(id string) {
	for parent := range p.dparents[id] {
		delete(p.dchildren[parent], id)
		delete(p.dweights, edgeKey{parent, id})
	}
	for child := range p.dchildren[id] {
		delete(p.dparents[child], id)
		delete(p.dweights, edgeKey{id, child})
	}
	for n := range p.uneighbors[id] {
		delete(p.uneighbors[n], id)
		delete(p.uweights, undirectedKey(id, n))
	}
	delete(p.dparents, id)
	delete(p.dchildren, id)
	delete(p.uneighbors, id)
	delete(p.nodes, id)
	delete(p.latents, id)
}

// DirectedGraph returns a DAG holding only the directed edges, with all
// nodes and latent flags carried over.
func (p *PDAG) DirectedGraph() *DAG {
	dag := NewDAG()
	for id := range p.nodes {
		dag.AddNode(id, p.latents.Has(id))
	}
	for k, w := range p.dweights {
		dag.AddWeightedEdge(k.from, k.to, w)
	}
	return dag
}

// Copy returns an independent deep clone.
func (p *PDAG) Copy() *PDAG {
	out := NewPDAG()
	out.nodes = p.nodes.Clone()
	out.latents = p.latents.Clone()
	for id, set := range p.dparents {
		out.dparents[id] = set.Clone()
	}
	for id, set := range p.dchildren {
		out.dchildren[id] = set.Clone()
	}
	for id, set := range p.uneighbors {
		out.uneighbors[id] = set.Clone()
	}
	for k, w := range p.dweights {
		out.dweights[k] = w
	}
	for k, w := range p.uweights {
		out.uweights[k] = w
	}
	return out
}

func (p *PDAG) requireNode(id string) error {
	if !p.nodes.Has(id) {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return nil
}

func undirectedKey(u, v string) edgeKey {
	if u < v {
		return edgeKey{u, v}
	}
	return edgeKey{v, u}
}
