package graph

import (
	"errors"
	"testing"
)

func TestToDAGAvoidsNewVStructure(t *testing.T) {
	p := buildPDAG(t,
		[]Edge{{"A", "B"}, {"C", "B"}},
		[]Edge{{"C", "D"}, {"D", "A"}},
	)
	dag, err := p.ToDAG()
	if err != nil {
		t.Fatalf("ToDAG: %v", err)
	}
	if !dag.HasEdge("A", "B") || !dag.HasEdge("C", "B") {
		t.Errorf("directed edges must be preserved, got %v", dag.Edges())
	}
	// Orienting both undirected edges into D would create a fresh
	// v-structure at D.
	if dag.HasEdge("A", "D") && dag.HasEdge("C", "D") {
		t.Errorf("extension created a new v-structure at D: %v", dag.Edges())
	}
	if dag.EdgeCount() != 4 {
		t.Errorf("EdgeCount = %d, want 4", dag.EdgeCount())
	}
}

func TestToDAGFreeEdge(t *testing.T) {
	p := buildPDAG(t,
		[]Edge{{"B", "C"}, {"A", "C"}},
		[]Edge{{"A", "D"}},
	)
	dag, err := p.ToDAG()
	if err != nil {
		t.Fatalf("ToDAG: %v", err)
	}
	if !dag.HasEdge("B", "C") || !dag.HasEdge("A", "C") {
		t.Errorf("directed edges must be preserved, got %v", dag.Edges())
	}
	if !dag.HasEdge("A", "D") && !dag.HasEdge("D", "A") {
		t.Errorf("undirected edge A-D must receive an orientation, got %v", dag.Edges())
	}
}

func TestToDAGForcedOrientation(t *testing.T) {
	p := buildPDAG(t,
		[]Edge{{"B", "C"}, {"A", "C"}},
		[]Edge{{"C", "D"}},
	)
	dag, err := p.ToDAG()
	if err != nil {
		t.Fatalf("ToDAG: %v", err)
	}
	// C-D must orient away from C: D has no other neighbors, so it is
	// eliminated first.
	wantEdges(t, dag.Edges(), Edge{"B", "C"}, Edge{"A", "C"}, Edge{"C", "D"})
}

func TestToDAGCarriesLatents(t *testing.T) {
	p := NewPDAG()
	p.AddNodesFrom([]string{"A", "B", "C", "D"}, []bool{true, false, false, false})
	if err := p.AddEdgesFrom([]Edge{{"A", "B"}, {"C", "B"}}, true); err != nil {
		t.Fatalf("add directed: %v", err)
	}
	if err := p.AddEdgesFrom([]Edge{{"C", "D"}, {"D", "A"}}, false); err != nil {
		t.Fatalf("add undirected: %v", err)
	}
	dag, err := p.ToDAG()
	if err != nil {
		t.Fatalf("ToDAG: %v", err)
	}
	if got := dag.Latents(); len(got) != 1 || got[0] != "A" {
		t.Errorf("Latents = %v, want [A]", got)
	}
}

func TestToDAGNoConsistentExtension(t *testing.T) {
	// A chordless undirected 4-cycle has no consistent extension: any
	// acyclic orientation has a sink whose two parents are non-adjacent.
	p := buildPDAG(t,
		nil,
		[]Edge{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "A"}},
	)
	_, err := p.ToDAG()
	if !errors.Is(err, ErrNoConsistentExtension) {
		t.Errorf("error = %v, want ErrNoConsistentExtension", err)
	}
}

func TestToDAGPreservesReceiver(t *testing.T) {
	p := buildPDAG(t, []Edge{{"A", "B"}}, []Edge{{"B", "C"}})
	if _, err := p.ToDAG(); err != nil {
		t.Fatalf("ToDAG: %v", err)
	}
	if !p.HasUndirectedEdge("B", "C") || p.NodeCount() != 3 {
		t.Error("ToDAG should not mutate the receiver")
	}
}
