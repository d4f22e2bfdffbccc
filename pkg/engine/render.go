package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/caugraph/caugraph/pkg/cache"
	"github.com/caugraph/caugraph/pkg/graph"
	"github.com/caugraph/caugraph/pkg/observability"
	"github.com/caugraph/caugraph/pkg/render"
)

// Format constants for rendered outputs.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// RenderOptions configures artifact rendering.
type RenderOptions struct {
	Format      string
	ShowWeights bool
	// Scale applies to PNG output only. Zero means 1x.
	Scale float64
}

func (o *RenderOptions) validateAndSetDefaults() error {
	if !ValidFormats[o.Format] {
		return fmt.Errorf("unsupported format %q", o.Format)
	}
	if o.Scale == 0 {
		o.Scale = 1.0
	}
	return nil
}

func (o RenderOptions) keyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      o.Format,
		ShowWeights: o.ShowWeights,
		Scale:       o.Scale,
	}
}

// RenderDAGWithCacheInfo renders a DAG artifact with caching and returns
// cache hit info.
func (r *Runner) RenderDAGWithCacheInfo(ctx context.Context, g *graph.DAG, opts RenderOptions) ([]byte, bool, error) {
	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	return r.renderArtifact(ctx, hash, opts, func(o render.Options) string {
		return render.ToDOT(g, o)
	})
}

// RenderDAG is a convenience wrapper that discards the cache hit info.
func (r *Runner) RenderDAG(ctx context.Context, g *graph.DAG, opts RenderOptions) ([]byte, error) {
	data, _, err := r.RenderDAGWithCacheInfo(ctx, g, opts)
	return data, err
}

// RenderPDAGWithCacheInfo renders a PDAG artifact with caching and
// returns cache hit info.
func (r *Runner) RenderPDAGWithCacheInfo(ctx context.Context, p *graph.PDAG, opts RenderOptions) ([]byte, bool, error) {
	hash, err := PDAGHash(p)
	if err != nil {
		return nil, false, err
	}
	return r.renderArtifact(ctx, hash, opts, func(o render.Options) string {
		return render.PDAGToDOT(p, o)
	})
}

// RenderPDAG is a convenience wrapper that discards the cache hit info.
func (r *Runner) RenderPDAG(ctx context.Context, p *graph.PDAG, opts RenderOptions) ([]byte, error) {
	data, _, err := r.RenderPDAGWithCacheInfo(ctx, p, opts)
	return data, err
}

// renderArtifact runs the shared cache-then-render path. toDOT builds the
// DOT source for the specific graph type.
func (r *Runner) renderArtifact(ctx context.Context, hash string, opts RenderOptions, toDOT func(render.Options) string) ([]byte, bool, error) {
	if err := opts.validateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(hash, opts.keyOpts())

	start := time.Now()
	observability.Engine().OnRenderStart(ctx, opts.Format)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Engine().OnRenderComplete(ctx, opts.Format, time.Since(start), nil)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	dot := toDOT(render.Options{ShowWeights: opts.ShowWeights})

	var data []byte
	var err error
	switch opts.Format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = render.RenderSVG(dot)
	case FormatPNG:
		data, err = render.RenderPNG(dot, opts.Scale)
	case FormatPDF:
		data, err = render.RenderPDF(dot)
	}
	observability.Engine().OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", opts.Format, err)
	}

	_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))

	r.Logger.Debug("rendered artifact",
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))
	return data, false, nil
}
