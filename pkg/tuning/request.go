package tuning

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/meander/pkg/board"
	"github.com/matzehuels/meander/pkg/cache"
	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/geometry"
	"github.com/matzehuels/meander/pkg/meander"
)

// Vertex is one point of a routed path. A non-zero Sweep turns the edge to
// the next vertex into a circular arc sweeping that many degrees; positive
// values rotate from +X toward +Y.
type Vertex struct {
	X     int     `json:"x" toml:"x"`
	Y     int     `json:"y" toml:"y"`
	Sweep float64 `json:"sweep,omitempty" toml:"sweep"`
}

// Point returns the vertex position.
func (v Vertex) Point() geometry.Point { return geometry.Pt(v.X, v.Y) }

// Request describes one net to tune.
type Request struct {
	// Net names the track or pair being tuned.
	Net string `json:"net"`

	Settings meander.Settings `json:"settings"`

	// Width is the track width; Clearance the minimum copper gap.
	Width     int `json:"width"`
	Clearance int `json:"clearance"`

	// Dual tunes a differential pair whose centerline is Path. Gap is the
	// distance between the two track centerlines.
	Dual bool `json:"dual,omitempty"`
	Gap  int  `json:"gap,omitempty"`

	// FlipSide starts the first meander on the right of the path instead
	// of the left.
	FlipSide bool `json:"flip_side,omitempty"`

	Path  []Vertex     `json:"path"`
	Board *board.Board `json:"board,omitempty"`

	// Refresh bypasses the cache.
	Refresh bool `json:"-"`
}

// SetDefaults fills unset settings with [meander.DefaultSettings].
func (r *Request) SetDefaults() {
	if r.Settings == (meander.Settings{}) {
		r.Settings = meander.DefaultSettings()
	}
}

// Validate checks the request for values the tuner cannot work with.
func (r *Request) Validate() error {
	if err := errors.ValidateNetName(r.Net); err != nil {
		return err
	}
	if err := r.Settings.Validate(); err != nil {
		return err
	}
	if r.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %d", r.Width)
	}
	if r.Clearance < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "clearance must not be negative, got %d", r.Clearance)
	}
	if r.Dual && r.Gap <= r.Width {
		return errors.New(errors.ErrCodeInvalidInput, "gap (%d) must exceed the track width (%d) for a pair", r.Gap, r.Width)
	}
	return r.validatePath()
}

func (r *Request) validatePath() error {
	if len(r.Path) < 2 {
		return errors.New(errors.ErrCodeInvalidBaseline, "path needs at least 2 vertices, got %d", len(r.Path))
	}
	for i, e := range r.edges() {
		if sw := r.Path[i].Sweep; math.IsNaN(sw) || math.IsInf(sw, 0) {
			return errors.New(errors.ErrCodeInvalidBaseline, "edge %d sweep is not a finite number", i)
		}
		if e.seg.IsDegenerate() {
			return errors.New(errors.ErrCodeInvalidBaseline, "edge %d has zero length", i)
		}
		if e.arc == nil {
			continue
		}
		if math.Abs(r.Path[i].Sweep) >= 360 {
			return errors.New(errors.ErrCodeInvalidBaseline, "edge %d sweeps %.1f degrees, must be below 360", i, r.Path[i].Sweep)
		}
		if r.Dual && e.arc.Radius() <= float64(r.offset()) {
			return errors.New(errors.ErrCodeInvalidBaseline, "edge %d arc radius is smaller than half the pair gap", i)
		}
	}
	return nil
}

// Hash returns a content hash of the request, used as its cache identity.
func (r *Request) Hash() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("hash request %q: %w", r.Net, err)
	}
	return cache.Hash(data), nil
}

// Baseline returns the untuned path as a chain.
func (r *Request) Baseline() geometry.Chain {
	var c geometry.Chain
	for _, e := range r.edges() {
		if e.arc != nil {
			c.AppendArc(*e.arc)
			continue
		}
		c.Append(e.seg.A)
		c.Append(e.seg.B)
	}
	return c
}

// offset is the distance of each pair track from the centerline.
func (r *Request) offset() int {
	if !r.Dual {
		return 0
	}
	return r.Gap / 2
}

type edge struct {
	seg geometry.Seg
	arc *geometry.Arc
}

func (r *Request) edges() []edge {
	if len(r.Path) < 2 {
		return nil
	}
	out := make([]edge, 0, len(r.Path)-1)
	for i := 0; i+1 < len(r.Path); i++ {
		e := edge{seg: geometry.NewSeg(r.Path[i].Point(), r.Path[i+1].Point())}
		if sw := r.Path[i].Sweep; sw != 0 && !e.seg.IsDegenerate() {
			a := geometry.ArcThrough(e.seg.A, e.seg.B, sw*math.Pi/180)
			e.arc = &a
		}
		out = append(out, e)
	}
	return out
}
