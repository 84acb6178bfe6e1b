package sink

import (
	"encoding/json"

	"github.com/matzehuels/meander/pkg/board"
	"github.com/matzehuels/meander/pkg/geometry"
	"github.com/matzehuels/meander/pkg/render"
)

type jsonOutput struct {
	Title      string           `json:"title,omitempty"`
	TrackWidth int              `json:"track_width"`
	Bounds     jsonBounds       `json:"bounds"`
	Lines      []geometry.Chain `json:"lines"`
	Baseline   geometry.Chain   `json:"baseline"`
	Units      []jsonUnit       `json:"units,omitempty"`
	Obstacles  []board.Obstacle `json:"obstacles,omitempty"`
	Outline    *board.Outline   `json:"outline,omitempty"`
}

type jsonBounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type jsonUnit struct {
	Type   string           `json:"type"`
	Chains []geometry.Chain `json:"chains"`
}

// RenderJSON encodes the scene as indented JSON for external drawing tools.
func RenderJSON(s render.Scene) ([]byte, error) {
	b := s.Bounds()
	out := jsonOutput{
		Title:      s.Title,
		TrackWidth: s.TrackWidth,
		Bounds:     jsonBounds{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y},
		Lines:      s.Lines,
		Baseline:   s.Baseline,
		Obstacles:  s.Obstacles,
		Outline:    s.Outline,
	}
	if out.Lines == nil {
		out.Lines = []geometry.Chain{}
	}
	for _, u := range s.Units {
		out.Units = append(out.Units, jsonUnit{Type: u.Type, Chains: u.Chains})
	}
	return json.MarshalIndent(out, "", "  ")
}
