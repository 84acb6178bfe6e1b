package tuning

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/meander/pkg/cache"
	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/observability"
	"github.com/matzehuels/meander/pkg/render/sink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// RenderOptions configures artifact rendering.
type RenderOptions struct {
	Format        string  `json:"format,omitempty"`
	Scale         float64 `json:"scale,omitempty"`
	ShowBaseline  bool    `json:"show_baseline,omitempty"`
	ShowObstacles bool    `json:"show_obstacles,omitempty"`
	UnitColors    bool    `json:"unit_colors,omitempty"`
}

// SetDefaults applies the default format and scale.
func (o *RenderOptions) SetDefaults() {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
}

// Validate checks the options.
func (o *RenderOptions) Validate() error {
	if err := errors.ValidateFormat(o.Format, Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative, got %v", o.Scale)
	}
	return nil
}

func (o *RenderOptions) keyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:        o.Format,
		Scale:         o.Scale,
		ShowBaseline:  o.ShowBaseline,
		ShowObstacles: o.ShowObstacles,
		UnitColors:    o.UnitColors,
	}
}

func (o *RenderOptions) svgOptions() []sink.SVGOption {
	var opts []sink.SVGOption
	if o.ShowBaseline {
		opts = append(opts, sink.WithBaseline())
	}
	if o.ShowObstacles {
		opts = append(opts, sink.WithObstacles())
	}
	if o.UnitColors {
		opts = append(opts, sink.WithUnitColors())
	}
	return opts
}

// RenderResult draws a result in the requested format without caching.
func RenderResult(res *Result, opts RenderOptions) ([]byte, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	scene := res.Scene()
	switch opts.Format {
	case FormatSVG:
		return sink.RenderSVG(scene, opts.svgOptions()...), nil
	case FormatPNG:
		return sink.RenderPNG(scene, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(opts.svgOptions()...))
	case FormatPDF:
		return sink.RenderPDF(scene, sink.WithPDFSVGOptions(opts.svgOptions()...))
	case FormatJSON:
		return sink.RenderJSON(scene)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "format %q", opts.Format)
}

// Render draws a result with caching and reports whether the artifact came
// from the cache.
func (r *Runner) Render(ctx context.Context, res *Result, opts RenderOptions) ([]byte, bool, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	hooks := observability.Tuning()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()

	// Results without a request hash are rendered but never cached.
	cacheable := res.Hash != ""
	cacheKey := r.Keyer.ArtifactKey(res.Hash, opts.keyOpts())
	if cacheable {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), nil)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := RenderResult(res, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Format, 0, time.Since(start), err)
		return nil, false, fmt.Errorf("render %s: %w", opts.Format, err)
	}

	if cacheable {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	r.Logger.Debug("rendered artifact",
		"net", res.Request.Net,
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))

	hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), nil)
	return data, false, nil
}
