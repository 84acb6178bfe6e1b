package tuning

import (
	"fmt"
	"time"

	"github.com/matzehuels/meander/pkg/geometry"
	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/render"
)

// Status reports how a tuned length compares to its target.
type Status int

const (
	// StatusNone means no target length was set.
	StatusNone Status = iota
	StatusTooShort
	StatusTuned
	StatusTooLong
)

var statusNames = [...]string{"none", "too_short", "tuned", "too_long"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for i, n := range statusNames {
		if n == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// StatusFor classifies length against target and tolerance. A zero target
// yields StatusNone.
func StatusFor(length float64, target, tolerance int64) Status {
	switch {
	case target == 0:
		return StatusNone
	case length < float64(target-tolerance):
		return StatusTooShort
	case length > float64(target+tolerance):
		return StatusTooLong
	default:
		return StatusTuned
	}
}

// Unit is a placed meander unit as reported to callers.
type Unit struct {
	Type      meander.Type     `json:"type"`
	Amplitude int              `json:"amplitude"`
	Side      bool             `json:"side"`
	BaseIndex int              `json:"base_index"`
	Base      geometry.Seg     `json:"base"`
	Chains    []geometry.Chain `json:"chains"`
}

// Result contains the output of tuning one net.
type Result struct {
	Request Request `json:"request"`
	Status  Status  `json:"status"`

	// BaselineLength is the untuned path length; Length the tuned length
	// of the first line. CoupledLength is the second line of a pair.
	BaselineLength float64 `json:"baseline_length"`
	Length         float64 `json:"length"`
	CoupledLength  float64 `json:"coupled_length,omitempty"`

	Lines []geometry.Chain `json:"lines"`
	Units []Unit           `json:"units"`

	Stats Stats `json:"stats"`

	// Hash is the request hash the result is cached under.
	Hash string `json:"hash"`

	// CacheInfo is set by the runner and not persisted.
	CacheInfo CacheInfo `json:"-"`
}

// Stats contains tuning statistics.
type Stats struct {
	Meanders int           `json:"meanders"`
	Checks   int           `json:"checks"`
	Rejected int           `json:"rejected"`
	Duration time.Duration `json:"duration"`
}

// CacheInfo tracks whether a result came from the cache.
type CacheInfo struct {
	Hit bool
}

// Delta returns the tuned length minus the target.
func (r *Result) Delta() float64 {
	return r.Length - float64(r.Request.Settings.TargetLength)
}

func newResult(req Request, line *meander.Line, baseLen float64) *Result {
	res := &Result{
		Request:        req,
		BaselineLength: baseLen,
	}
	// An unhashable request leaves Hash empty and its artifacts uncached.
	if h, err := req.Hash(); err == nil {
		res.Hash = h
	}

	res.Lines = []geometry.Chain{line.Chain(0)}
	res.Length = res.Lines[0].Length()
	if req.Dual {
		res.Lines = append(res.Lines, line.Chain(1))
		res.CoupledLength = res.Lines[1].Length()
	}

	for _, m := range line.Units() {
		u := Unit{
			Type:      m.Type(),
			Amplitude: m.Amplitude(),
			Side:      m.Side(),
			BaseIndex: m.BaseIndex(),
			Base:      m.BaseSegment(),
			Chains:    []geometry.Chain{m.Chain(0)},
		}
		if req.Dual {
			u.Chains = append(u.Chains, m.Chain(1))
		}
		if tunable(m) {
			res.Stats.Meanders++
		}
		res.Units = append(res.Units, u)
	}

	res.Status = StatusFor(res.Length, req.Settings.TargetLength, req.Settings.LengthTolerance)
	return res
}

// Scene converts the result for the render sinks.
func (r *Result) Scene() render.Scene {
	s := render.Scene{
		Title:      r.Request.Net,
		TrackWidth: r.Request.Width,
		Lines:      r.Lines,
		Baseline:   r.Request.Baseline(),
	}
	for _, u := range r.Units {
		s.Units = append(s.Units, render.Unit{Type: u.Type.String(), Chains: u.Chains})
	}
	if b := r.Request.Board; b != nil {
		s.Obstacles = b.Obstacles
		s.Outline = b.Outline
	}
	return s
}
