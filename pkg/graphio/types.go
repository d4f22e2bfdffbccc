package graphio

import (
	"errors"
	"fmt"

	"github.com/caugraph/caugraph/pkg/graph"
)

// Document kinds.
const (
	KindDAG  = "dag"
	KindPDAG = "pdag"
)

// ErrInvalidDocument is returned when a decoded document cannot be turned
// into the requested graph type.
var ErrInvalidDocument = errors.New("graphio: invalid graph document")

// Document is the canonical serialization format for causal graphs. Used for
// API responses, storage, caching, and file interchange.
//
// The format is human-readable and round-trip faithful: export followed by
// re-import produces an identical graph. Node and edge lists are sorted for
// deterministic output.
type Document struct {
	Kind  string `json:"kind" bson:"kind"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a serialized variable.
type Node struct {
	ID     string `json:"id" bson:"id"`
	Latent bool   `json:"latent,omitempty" bson:"latent,omitempty"`
}

// Edge is a serialized edge. Weight defaults to 1 when omitted. Undirected
// is only meaningful in pdag documents; the pair is stored once with
// From < To.
type Edge struct {
	From       string   `json:"from" bson:"from"`
	To         string   `json:"to" bson:"to"`
	Weight     *float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	Undirected bool     `json:"undirected,omitempty" bson:"undirected,omitempty"`
}

func (e Edge) weight() float64 {
	if e.Weight == nil {
		return graph.DefaultWeight
	}
	return *e.Weight
}

// FromDAG converts a DAG to its serialization format.
func FromDAG(d *graph.DAG) Document {
	doc := Document{Kind: KindDAG, Nodes: nodeList(d.Nodes(), d.IsLatent)}
	for _, e := range d.Edges() {
		w, _ := d.EdgeWeight(e.From, e.To)
		doc.Edges = append(doc.Edges, Edge{From: e.From, To: e.To, Weight: &w})
	}
	return doc
}

// ToDAG builds a DAG from a document. The document must have kind "dag" and
// only directed edges.
func ToDAG(doc Document) (*graph.DAG, error) {
	if doc.Kind != KindDAG {
		return nil, fmt.Errorf("%w: kind %q, want %q", ErrInvalidDocument, doc.Kind, KindDAG)
	}
	d := graph.NewDAG()
	for _, n := range doc.Nodes {
		d.AddNode(n.ID, n.Latent)
	}
	for _, e := range doc.Edges {
		if e.Undirected {
			return nil, fmt.Errorf("%w: undirected edge %s - %s in dag document", ErrInvalidDocument, e.From, e.To)
		}
		d.AddWeightedEdge(e.From, e.To, e.weight())
	}
	return d, nil
}

// FromPDAG converts a PDAG to its serialization format.
func FromPDAG(p *graph.PDAG) Document {
	doc := Document{Kind: KindPDAG, Nodes: nodeList(p.Nodes(), p.IsLatent)}
	for _, e := range p.DirectedEdges() {
		w, _ := p.DirectedEdgeWeight(e.From, e.To)
		doc.Edges = append(doc.Edges, Edge{From: e.From, To: e.To, Weight: &w})
	}
	for _, e := range p.UndirectedEdges() {
		w, _ := p.UndirectedEdgeWeight(e.From, e.To)
		doc.Edges = append(doc.Edges, Edge{From: e.From, To: e.To, Weight: &w, Undirected: true})
	}
	return doc
}

// ToPDAG builds a PDAG from a document of kind "pdag". Directed edges go
// through cycle checking exactly as they would when built by hand.
func ToPDAG(doc Document) (*graph.PDAG, error) {
	if doc.Kind != KindPDAG {
		return nil, fmt.Errorf("%w: kind %q, want %q", ErrInvalidDocument, doc.Kind, KindPDAG)
	}
	p := graph.NewPDAG()
	for _, n := range doc.Nodes {
		p.AddNode(n.ID, n.Latent)
	}
	for _, e := range doc.Edges {
		if err := p.AddWeightedEdge(e.From, e.To, e.weight(), !e.Undirected); err != nil {
			return nil, fmt.Errorf("graphio: edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	return p, nil
}

func nodeList(ids []string, isLatent func(string) bool) []Node {
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{ID: id, Latent: isLatent(id)}
	}
	return out
}
