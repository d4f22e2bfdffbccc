package graph

// dsep.go implements reachability under d-separation using the Bayes-ball
// scheme: trail states are (node, direction) pairs, where direction records
// whether the trail arrived at the node from a child (up) or from a parent
// (down). Colliders only pass the ball when the collider or one of its
// descendants is observed, which is equivalent to the collider being an
// ancestor of the observed set.

type trailDirection uint8

const (
	trailUp trailDirection = iota
	trailDown
)

type trailState struct {
	node string
	dir  trailDirection
}

// ActiveTrailNodes returns, for each start variable, the set of nodes
// reachable from it along a trail that is active given the observed set.
// Each start variable is a member of its own result set. Latent nodes are
// excluded from the result sets unless includeLatents is true; they still
// relay trails either way.
func (d *DAG) ActiveTrailNodes(variables []string, observed []string, includeLatents bool) (map[string]VarSet, error) {
	for _, v := range variables {
		if err := d.requireNode(v); err != nil {
			return nil, err
		}
	}
	obs := NewVarSet()
	for _, o := range observed {
		if err := d.requireNode(o); err != nil {
			return nil, err
		}
		obs.Add(o)
	}
	obsAncestors, err := d.AncestorsOf(obs.Sorted()...)
	if err != nil {
		return nil, err
	}

	out := make(map[string]VarSet, len(variables))
	for _, start := range variables {
		active := NewVarSet()
		visited := make(map[trailState]struct{})
		queue := []trailState{{node: start, dir: trailUp}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if _, seen := visited[cur]; seen {
				continue
			}
			visited[cur] = struct{}{}

			if !obs.Has(cur.node) {
				active.Add(cur.node)
			}
			switch cur.dir {
			case trailUp:
				if obs.Has(cur.node) {
					continue
				}
				for p := range d.parents[cur.node] {
					queue = append(queue, trailState{node: p, dir: trailUp})
				}
				for c := range d.children[cur.node] {
					queue = append(queue, trailState{node: c, dir: trailDown})
				}
			case trailDown:
				if !obs.Has(cur.node) {
					for c := range d.children[cur.node] {
						queue = append(queue, trailState{node: c, dir: trailDown})
					}
				}
				if obsAncestors.Has(cur.node) {
					for p := range d.parents[cur.node] {
						queue = append(queue, trailState{node: p, dir: trailUp})
					}
				}
			}
		}
		if !includeLatents {
			active = active.Difference(d.latents)
		}
		out[start] = active
	}
	return out, nil
}

// IsDConnected reports whether an active trail exists between x and y given
// the observed set.
func (d *DAG) IsDConnected(x, y string, observed []string, includeLatents bool) (bool, error) {
	if err := d.requireNode(y); err != nil {
		return false, err
	}
	trails, err := d.ActiveTrailNodes([]string{x}, observed, includeLatents)
	if err != nil {
		return false, err
	}
	return trails[x].Has(y), nil
}
