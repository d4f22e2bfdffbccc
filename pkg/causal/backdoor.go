package causal

import "github.com/caugraph/caugraph/pkg/graph"

// ValidateAdjustment reports whether the model's adjustment set blocks every
// backdoor path between the exposure and the outcome. Forward paths are
// excluded by dropping the exposure's outgoing edges before the d-connection
// test; latent variables participate in the test since unobserved confounders
// open backdoor paths like any other variable.
func (m *Model) ValidateAdjustment() (bool, error) {
	exposure, err := m.singleRole(RoleExposure)
	if err != nil {
		return false, err
	}
	outcome, err := m.singleRole(RoleOutcome)
	if err != nil {
		return false, err
	}

	backdoorOnly := withoutOutgoingEdges(m.dag, exposure)
	connected, err := backdoorOnly.IsDConnected(exposure, outcome, m.Role(RoleAdjustment), true)
	if err != nil {
		return false, err
	}
	return !connected, nil
}

// withoutOutgoingEdges rebuilds the DAG with every edge leaving the given
// node removed.
func withoutOutgoingEdges(d *graph.DAG, node string) *graph.DAG {
	out := graph.NewDAG()
	for _, id := range d.Nodes() {
		out.AddNode(id, d.IsLatent(id))
	}
	for _, e := range d.Edges() {
		if e.From == node {
			continue
		}
		w, _ := d.EdgeWeight(e.From, e.To)
		out.AddWeightedEdge(e.From, e.To, w)
	}
	return out
}
