package graph

import "fmt"

// MinimalDSeparator computes a minimal set Z of observable nodes such that x
// and y are d-separated given Z, or returns nil when no such set exists
// because every blocking candidate on some trail is latent. Adjacent nodes
// admit no separator at all, which is reported as ErrNoSeparator.
//
// The computation runs on the moralized ancestral graph of {x, y}: starting
// from the full candidate pool it restricts to the separator boundary as
// seen from y, then again as seen from x. Each restriction preserves
// separation, and the double restriction yields a minimal set. When
// includeLatents is true latent nodes are admitted into the separator.
func (d *DAG) MinimalDSeparator(x, y string, includeLatents bool) (VarSet, error) {
	if err := d.requireNode(x); err != nil {
		return nil, err
	}
	if err := d.requireNode(y); err != nil {
		return nil, err
	}
	if d.HasEdge(x, y) || d.HasEdge(y, x) {
		return nil, fmt.Errorf("%w: %s and %s are adjacent", ErrNoSeparator, x, y)
	}

	ag, err := d.AncestralGraph(x, y)
	if err != nil {
		return nil, err
	}
	moral := ag.Moralize()

	pool := NewVarSet()
	for id := range moral.nodes {
		if id == x || id == y {
			continue
		}
		if !includeLatents && moral.latents.Has(id) {
			continue
		}
		pool.Add(id)
	}

	reach, _ := moralReach(moral, x, pool)
	if reach.Has(y) {
		return nil, nil
	}
	_, fromY := moralReach(moral, y, pool)
	_, fromX := moralReach(moral, x, fromY)
	return fromX, nil
}

// moralReach walks the undirected moral graph from src, refusing to traverse
// through blocked nodes. It returns the reached set (containing src) and the
// boundary: the blocked nodes adjacent to the reached set.
func moralReach(m *PDAG, src string, blocked VarSet) (reach, boundary VarSet) {
	reach = NewVarSet()
	boundary = NewVarSet()
	reach.Add(src)
	queue := []string{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for n := range m.uneighbors[cur] {
			if blocked.Has(n) {
				boundary.Add(n)
				continue
			}
			if !reach.Has(n) {
				reach.Add(n)
				queue = append(queue, n)
			}
		}
	}
	return reach, boundary
}
