// Package render draws tuned tracks.
//
// # Overview
//
// A [Scene] is the renderer's view of a tuning result: the tuned output
// lines, the untuned baseline, the individual meander units and the board
// obstacles around them. Scenes are built by the tuning pipeline and handed
// to the sinks in the [sink] subpackage.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(scene, sink.WithObstacles())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/meander/pkg/render/sink
package render
