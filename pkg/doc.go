// Package pkg provides the libraries behind the meander length tuner.
//
// # Overview
//
// Meander lengthens routed PCB tracks by replacing straight runs with
// serpentine detours until each net reaches its target length. The pkg
// directory is organized into three areas:
//
//  1. Geometry and placement: [geometry], [meander], [board]
//  2. Orchestration: [tuning] (validation, trimming, caching, rendering)
//  3. Infrastructure: [cache], [jobstore], [io], [server], [render],
//     [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	Job file (TOML/JSON) or HTTP request
//	         ↓
//	    [io] package (decode requests)
//	         ↓
//	    [tuning] package (place meanders along the path, trim to target)
//	         ↓
//	    [meander] package (shapes and lines, judged by a [board] oracle)
//	         ↓
//	    [render] package (SVG/PDF/PNG/JSON output)
//
// # Quick Start
//
// Tune one net and render it:
//
//	import (
//	    "github.com/matzehuels/meander/pkg/meander"
//	    "github.com/matzehuels/meander/pkg/tuning"
//	)
//
//	st := meander.DefaultSettings()
//	st.TargetLength = 60_000_000
//
//	res, _ := tuning.TuneNet(tuning.Request{
//	    Net:       "CLK",
//	    Settings:  st,
//	    Width:     200_000,
//	    Clearance: 150_000,
//	    Path:      []tuning.Vertex{{X: 0, Y: 0}, {X: 40_000_000, Y: 0}},
//	})
//
//	svg, _ := tuning.RenderResult(res, tuning.RenderOptions{Format: tuning.FormatSVG})
//
// # Main Packages
//
// [geometry] - Integer points, segments, circular arcs and chains (polylines
// with arc edges), with length, distance and collision queries.
//
// [meander] - The meander engine. A Shape generates one unit (start, turn,
// finish, single) and fits its amplitude against an Oracle; a Line fills a
// baseline segment with units and checks new shapes for self-intersection.
//
// [board] - A host-side oracle: obstacle segments and a keep-in outline.
//
// [tuning] - Request validation, placement along multi-segment paths with
// arcs, length trimming, result status and the cached Runner used by the CLI
// and the API.
//
// [cache] - Cache interface with null, file and Redis backends plus key
// derivation and retry helpers.
//
// [jobstore] - Tuning jobs for the API, stored in memory, files or MongoDB.
//
// [server] - The HTTP API built on chi.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/meander/...            # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis and MongoDB tests run when MEANDER_REDIS_URL and MEANDER_MONGO_URI
// are set.
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/geometry
// [meander]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/meander
// [board]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/board
// [tuning]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/tuning
// [cache]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/cache
// [jobstore]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/jobstore
// [io]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/io
// [server]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/server
// [render]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/render
// [observability]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/meander/pkg/errors
package pkg
