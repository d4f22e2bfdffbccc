package graph

import "fmt"

// ToDAG produces a DAG that is a consistent extension of the PDAG: every
// directed edge keeps its orientation, every undirected edge receives one,
// and no new v-structure or directed cycle is introduced. It fails with
// ErrNoConsistentExtension when the PDAG admits no such extension.
//
// The construction follows the Dor-Tarsi elimination scheme: repeatedly pick
// a sink candidate x, a node with no outgoing directed edges whose
// undirected neighbors are adjacent to every other neighbor of x, orient x's
// undirected edges toward x, and remove x. Candidates are tried in ascending
// node order, so the chosen extension is deterministic.
func (p *PDAG) ToDAG() (*DAG, error) {
	dag := NewDAG()
	for id := range p.nodes {
		dag.AddNode(id, p.latents.Has(id))
	}

	work := p.Copy()
	for work.nodes.Len() > 0 {
		x, ok := work.pickSink()
		if !ok {
			return nil, fmt.Errorf("%w: no valid sink among %d remaining nodes", ErrNoConsistentExtension, work.nodes.Len())
		}
		for parent := range work.dparents[x] {
			dag.AddWeightedEdge(parent, x, work.dweights[edgeKey{parent, x}])
		}
		for n := range work.uneighbors[x] {
			dag.AddWeightedEdge(n, x, work.uweights[undirectedKey(n, x)])
		}
		work.removeNode(x)
	}
	return dag, nil
}

// pickSink returns the first node in ascending order with no outgoing
// directed edges whose undirected neighbors are adjacent to all of the
// node's other neighbors.
func (p *PDAG) pickSink() (string, bool) {
	for _, x := range p.nodes.Sorted() {
		if p.dchildren[x].Len() > 0 {
			continue
		}
		neighbors := p.dparents[x].Union(p.uneighbors[x])
		ok := true
		for n := range p.uneighbors[x] {
			for other := range neighbors {
				if other == n {
					continue
				}
				if !p.IsAdjacent(n, other) {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
		}
		if ok {
			return x, true
		}
	}
	return "", false
}
