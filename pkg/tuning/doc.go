// Package tuning runs the meander engine over routed nets.
//
// This package is the pipeline shared by the CLI and the API server. It
// takes a [Request] (a routed path, meander settings, track geometry and
// the surrounding board), meanders every straight edge of the path, passes
// arcs through, and trims the result to the target length.
//
// # Stages
//
//  1. Place: every straight edge is filled by [meander.Line.MeanderSegment]
//     with a [board.Oracle] judging each candidate shape.
//  2. Trim: [TuneLength] closes the meander run at the unit that reaches the
//     target and lowers amplitudes to absorb the overshoot.
//  3. Render: [Runner.Render] draws the result as SVG, PNG, PDF or JSON.
//
// # Usage
//
//	runner := tuning.NewRunner(cache, nil, logger)
//	res, err := runner.Tune(ctx, tuning.Request{
//	    Net:      "CLK",
//	    Settings: meander.DefaultSettings(),
//	    Width:    200_000,
//	    Path:     []tuning.Vertex{{X: 0, Y: 0}, {X: 20_000_000, Y: 0}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Status, res.Length)
//
// Results and rendered artifacts are cached by content hash, so repeating a
// request is cheap.
//
// [board.Oracle]: github.com/matzehuels/meander/pkg/board.Oracle
// [meander.Line.MeanderSegment]: github.com/matzehuels/meander/pkg/meander.Line.MeanderSegment
package tuning
