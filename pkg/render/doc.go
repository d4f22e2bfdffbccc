// Package render provides visualization rendering for causal graphs.
//
// # Overview
//
// This package transforms DAGs and PDAGs into visual outputs:
//
//   - DOT generation ([ToDOT], [PDAGToDOT])
//   - SVG rendering via Graphviz ([RenderSVG])
//   - Generic format conversion ([ToPDF], [ToPNG])
//
// # DOT Generation
//
// [ToDOT] and [PDAGToDOT] emit Graphviz DOT. Latent variables are drawn
// with dashed outlines and grey fill so they stand out from observed
// nodes. Undirected PDAG edges are drawn without arrowheads.
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
