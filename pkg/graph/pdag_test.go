package graph

import (
	"errors"
	"reflect"
	"testing"
)

// mixedPDAG has directed A→C, D→C and undirected A–B, B–D.
func mixedPDAG(t *testing.T) *PDAG {
	t.Helper()
	p := NewPDAG()
	if err := p.AddEdgesFrom([]Edge{{"A", "C"}, {"D", "C"}}, true); err != nil {
		t.Fatalf("add directed: %v", err)
	}
	if err := p.AddEdgesFrom([]Edge{{"B", "A"}, {"B", "D"}}, false); err != nil {
		t.Fatalf("add undirected: %v", err)
	}
	return p
}

func TestPDAGEdges(t *testing.T) {
	p := mixedPDAG(t)

	if got := p.Nodes(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Errorf("Nodes = %v", got)
	}
	// Undirected edges show up in both directions.
	wantEdges(t, p.Edges(),
		Edge{"A", "C"}, Edge{"D", "C"},
		Edge{"A", "B"}, Edge{"B", "A"},
		Edge{"B", "D"}, Edge{"D", "B"},
	)
	wantEdges(t, p.DirectedEdges(), Edge{"A", "C"}, Edge{"D", "C"})
	wantEdges(t, p.UndirectedEdges(), Edge{"A", "B"}, Edge{"B", "D"})
	if p.EdgeCount() != 6 {
		t.Errorf("EdgeCount = %d, want 6", p.EdgeCount())
	}
}

func TestPDAGNeighborQueries(t *testing.T) {
	p := mixedPDAG(t)

	tests := []struct {
		node  string
		all   []string
		undir []string
	}{
		{"A", []string{"B", "C"}, []string{"B"}},
		{"B", []string{"A", "D"}, []string{"A", "D"}},
		{"C", []string{"A", "D"}, []string{}},
		{"D", []string{"B", "C"}, []string{"B"}},
	}
	for _, tt := range tests {
		all, err := p.AllNeighbors(tt.node)
		if err != nil {
			t.Fatalf("AllNeighbors(%s): %v", tt.node, err)
		}
		if !reflect.DeepEqual(all, tt.all) {
			t.Errorf("AllNeighbors(%s) = %v, want %v", tt.node, all, tt.all)
		}
		undir, err := p.UndirectedNeighbors(tt.node)
		if err != nil {
			t.Fatalf("UndirectedNeighbors(%s): %v", tt.node, err)
		}
		if !reflect.DeepEqual(undir, tt.undir) {
			t.Errorf("UndirectedNeighbors(%s) = %v, want %v", tt.node, undir, tt.undir)
		}
	}

	children, err := p.DirectedChildren("A")
	if err != nil {
		t.Fatalf("DirectedChildren: %v", err)
	}
	if !reflect.DeepEqual(children, []string{"C"}) {
		t.Errorf("DirectedChildren(A) = %v", children)
	}
	parents, err := p.DirectedParents("C")
	if err != nil {
		t.Fatalf("DirectedParents: %v", err)
	}
	if !reflect.DeepEqual(parents, []string{"A", "D"}) {
		t.Errorf("DirectedParents(C) = %v", parents)
	}
}

func TestPDAGEdgePredicates(t *testing.T) {
	p := mixedPDAG(t)

	if !p.HasDirectedEdge("A", "C") || p.HasDirectedEdge("C", "A") {
		t.Error("HasDirectedEdge A→C misreported")
	}
	if p.HasDirectedEdge("A", "B") {
		t.Error("A-B is undirected, not directed")
	}
	if !p.HasUndirectedEdge("A", "B") || !p.HasUndirectedEdge("B", "A") {
		t.Error("HasUndirectedEdge should hold in both argument orders")
	}
	if p.HasUndirectedEdge("A", "C") {
		t.Error("A→C is directed, not undirected")
	}
	if !p.IsAdjacent("A", "C") || !p.IsAdjacent("C", "A") || !p.IsAdjacent("A", "B") {
		t.Error("IsAdjacent misreported")
	}
	if p.IsAdjacent("B", "C") {
		t.Error("B and C are not adjacent")
	}
}

func TestPDAGCycleRejection(t *testing.T) {
	p := NewPDAG()
	if err := p.AddEdgesFrom([]Edge{{"A", "B"}, {"B", "C"}}, true); err != nil {
		t.Fatalf("add directed: %v", err)
	}
	if err := p.AddEdge("C", "A", true); !errors.Is(err, ErrCycle) {
		t.Errorf("closing directed cycle error = %v, want ErrCycle", err)
	}
	if err := p.AddEdge("A", "A", true); !errors.Is(err, ErrCycle) {
		t.Errorf("self loop error = %v, want ErrCycle", err)
	}
	// Undirected edges never trip the cycle check.
	if err := p.AddEdge("C", "A", false); err != nil {
		t.Errorf("undirected add error = %v", err)
	}
}

func TestPDAGOrientUndirectedEdge(t *testing.T) {
	p := mixedPDAG(t)

	mod, err := p.OrientUndirectedEdge("B", "A", false)
	if err != nil {
		t.Fatalf("OrientUndirectedEdge: %v", err)
	}
	wantEdges(t, mod.DirectedEdges(), Edge{"A", "C"}, Edge{"D", "C"}, Edge{"B", "A"})
	wantEdges(t, mod.UndirectedEdges(), Edge{"B", "D"})
	// Receiver untouched with inplace=false.
	wantEdges(t, p.UndirectedEdges(), Edge{"A", "B"}, Edge{"B", "D"})

	if _, err := p.OrientUndirectedEdge("B", "A", true); err != nil {
		t.Fatalf("OrientUndirectedEdge inplace: %v", err)
	}
	wantEdges(t, p.DirectedEdges(), Edge{"A", "C"}, Edge{"D", "C"}, Edge{"B", "A"})
	wantEdges(t, p.UndirectedEdges(), Edge{"B", "D"})

	// Re-orienting the committed edge fails.
	if _, err := p.OrientUndirectedEdge("B", "A", true); !errors.Is(err, ErrAlreadyOriented) {
		t.Errorf("re-orient error = %v, want ErrAlreadyOriented", err)
	}
	if _, err := p.OrientUndirectedEdge("B", "Z", true); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("unknown node error = %v, want ErrNodeNotFound", err)
	}
}

func TestPDAGCopy(t *testing.T) {
	p := NewPDAG()
	p.AddNodesFrom([]string{"A", "B", "C", "D"}, []bool{true, false, false, true})
	if err := p.AddEdgesFrom([]Edge{{"A", "C"}, {"D", "C"}}, true); err != nil {
		t.Fatalf("add directed: %v", err)
	}
	if err := p.AddEdgesFrom([]Edge{{"B", "A"}, {"B", "D"}}, false); err != nil {
		t.Fatalf("add undirected: %v", err)
	}

	cp := p.Copy()
	if got := cp.Latents(); !reflect.DeepEqual(got, []string{"A", "D"}) {
		t.Errorf("Latents = %v", got)
	}
	wantEdges(t, cp.DirectedEdges(), Edge{"A", "C"}, Edge{"D", "C"})
	wantEdges(t, cp.UndirectedEdges(), Edge{"A", "B"}, Edge{"B", "D"})

	if _, err := cp.OrientUndirectedEdge("B", "A", true); err != nil {
		t.Fatalf("orient on copy: %v", err)
	}
	if !p.HasUndirectedEdge("B", "A") {
		t.Error("mutating the copy should not touch the original")
	}
}

func TestPDAGDirectedGraph(t *testing.T) {
	p := NewPDAG()
	p.AddNodesFrom([]string{"A", "B", "C", "D"}, []bool{true, false, false, false})
	if err := p.AddEdgesFrom([]Edge{{"A", "C"}, {"D", "C"}}, true); err != nil {
		t.Fatalf("add directed: %v", err)
	}
	if err := p.AddEdgesFrom([]Edge{{"B", "A"}}, false); err != nil {
		t.Fatalf("add undirected: %v", err)
	}

	dag := p.DirectedGraph()
	if got := dag.Nodes(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Errorf("Nodes = %v", got)
	}
	wantEdges(t, dag.Edges(), Edge{"A", "C"}, Edge{"D", "C"})
	if !dag.IsLatent("A") {
		t.Error("latent flag should carry into the directed graph")
	}
}

func TestPDAGHasDirectedPath(t *testing.T) {
	p := NewPDAG()
	if err := p.AddEdgesFrom([]Edge{{"A", "B"}, {"B", "C"}}, true); err != nil {
		t.Fatalf("add directed: %v", err)
	}
	if err := p.AddEdge("C", "D", false); err != nil {
		t.Fatalf("add undirected: %v", err)
	}

	if !p.HasDirectedPath("A", "C") {
		t.Error("expected path A⇒C")
	}
	if p.HasDirectedPath("C", "A") {
		t.Error("unexpected path C⇒A")
	}
	// Undirected edges do not extend directed paths.
	if p.HasDirectedPath("A", "D") {
		t.Error("unexpected path A⇒D through undirected edge")
	}
}
