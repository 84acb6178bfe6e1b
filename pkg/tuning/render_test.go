package tuning

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/meander/pkg/errors"
)

func TestRenderOptionsValidate(t *testing.T) {
	tests := []struct {
		opts    RenderOptions
		wantErr bool
	}{
		{RenderOptions{}, false},
		{RenderOptions{Format: "svg", Scale: 2}, false},
		{RenderOptions{Format: "json"}, false},
		{RenderOptions{Format: "gif"}, true},
		{RenderOptions{Format: "SVG"}, true}, // case-sensitive
		{RenderOptions{Scale: -1}, true},
	}

	for _, tt := range tests {
		tt.opts.SetDefaults()
		err := tt.opts.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.opts, err, tt.wantErr)
		}
	}
}

func TestRenderResult(t *testing.T) {
	res, err := TuneNet(straightRequest(1000, 0))
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}

	svg, err := RenderResult(res, RenderOptions{UnitColors: true})
	if err != nil {
		t.Fatalf("RenderResult(svg) error: %v", err)
	}
	if !strings.Contains(string(svg), `class="unit turn"`) {
		t.Error("svg does not color turn units")
	}

	data, err := RenderResult(res, RenderOptions{Format: FormatJSON})
	if err != nil {
		t.Fatalf("RenderResult(json) error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}
	if out["title"] != "CLK" {
		t.Errorf("title = %v, want CLK", out["title"])
	}

	_, err = RenderResult(res, RenderOptions{Format: "gif"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderResult(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerRenderCache(t *testing.T) {
	c := newMemCache()
	r := quietRunner(c)
	ctx := context.Background()

	res, err := r.Tune(ctx, straightRequest(1000, 0))
	if err != nil {
		t.Fatalf("Tune() error: %v", err)
	}

	first, hit, err := r.Render(ctx, res, RenderOptions{ShowBaseline: true})
	if err != nil || hit {
		t.Fatalf("Render() = hit %v, err %v; want a fresh render", hit, err)
	}
	second, hit, err := r.Render(ctx, res, RenderOptions{ShowBaseline: true})
	if err != nil || !hit {
		t.Fatalf("Render() = hit %v, err %v; want a cache hit", hit, err)
	}
	if string(first) != string(second) {
		t.Error("cached artifact differs")
	}

	_, hit, err = r.Render(ctx, res, RenderOptions{})
	if err != nil || hit {
		t.Errorf("Render() with other options = hit %v, err %v; want a fresh render", hit, err)
	}
}

func TestRunnerRenderWithoutHash(t *testing.T) {
	c := newMemCache()
	r := quietRunner(c)
	ctx := context.Background()

	res, err := TuneNet(straightRequest(1000, 0))
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}
	res.Hash = ""

	for i := 0; i < 2; i++ {
		if _, hit, err := r.Render(ctx, res, RenderOptions{}); err != nil || hit {
			t.Fatalf("Render() #%d = hit %v, err %v; want a fresh render", i, hit, err)
		}
	}
	if c.sets != 0 {
		t.Errorf("cache sets = %d, want 0 for a result without a hash", c.sets)
	}
}
