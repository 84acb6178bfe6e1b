// Package sink renders tuned tracks to output formats.
//
// [RenderSVG] draws a [render.Scene] as a standalone SVG document in board
// coordinates. Arc edges are emitted as SVG elliptical arc commands, so
// round meander corners stay exact at any zoom. [RenderPNG] and [RenderPDF]
// convert that SVG with rsvg-convert.
//
// Options control which layers are drawn:
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithBaseline(),
//	    sink.WithObstacles(),
//	    sink.WithUnitColors(),
//	)
package sink
