package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/caugraph/caugraph/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// ShowWeights includes edge weights in edge labels.
	// When false, edges are drawn without labels.
	ShowWeights bool
}

// ToDOT converts a DAG to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Latent variables are rendered with dashed outlines and grey fill to
// distinguish them from observed variables.
func ToDOT(g *graph.DAG, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf)

	for _, id := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(nodeAttrs(id, g.IsLatent(id)), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		w, _ := g.EdgeWeight(e.From, e.To)
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.From, e.To, edgeAttrs(w, opts))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// PDAGToDOT converts a PDAG to Graphviz DOT format.
// Directed edges carry arrowheads; undirected edges are drawn with dir=none.
func PDAGToDOT(p *graph.PDAG, opts Options) string {
	var buf bytes.Buffer
	writeHeader(&buf)

	for _, id := range p.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(nodeAttrs(id, p.IsLatent(id)), ", "))
	}

	buf.WriteString("\n")
	for _, e := range p.DirectedEdges() {
		w, _ := p.DirectedEdgeWeight(e.From, e.To)
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.From, e.To, edgeAttrs(w, opts))
	}
	for _, e := range p.UndirectedEdges() {
		w, _ := p.UndirectedEdgeWeight(e.From, e.To)
		attrs := []string{"dir=none"}
		if opts.ShowWeights {
			attrs = append(attrs, fmt.Sprintf("label=%q", formatWeight(w)))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeHeader(buf *bytes.Buffer) {
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

func nodeAttrs(id string, latent bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", id)}
	if latent {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func edgeAttrs(weight float64, opts Options) string {
	if !opts.ShowWeights {
		return ""
	}
	return fmt.Sprintf(" [label=%q]", formatWeight(weight))
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
