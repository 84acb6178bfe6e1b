package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/meander/pkg/board"
	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/tuning"
)

type jobFile struct {
	Width     int              `toml:"width"`
	Clearance int              `toml:"clearance"`
	FlipSide  bool             `toml:"flip_side"`
	Settings  meander.Settings `toml:"settings"`
	Nets      []netEntry       `toml:"net"`
	Obstacles []board.Obstacle `toml:"obstacle"`
	Outline   *board.Outline   `toml:"outline"`
}

type netEntry struct {
	Name            string          `toml:"name"`
	Width           int             `toml:"width"`
	Clearance       int             `toml:"clearance"`
	Dual            bool            `toml:"dual"`
	Gap             int             `toml:"gap"`
	FlipSide        *bool           `toml:"flip_side"`
	TargetLength    *int64          `toml:"target_length"`
	LengthTolerance *int64          `toml:"length_tolerance"`
	Path            []tuning.Vertex `toml:"path"`
}

// ReadTOML decodes a TOML job file from r into one request per net.
//
// ReadTOML returns an error if the TOML is malformed, contains unknown
// keys, defines no nets, or repeats a net name. Requests are returned in
// file order and are not validated; the tuner validates each one.
func ReadTOML(r io.Reader) ([]tuning.Request, error) {
	f := jobFile{Settings: meander.DefaultSettings()}

	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode job file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}

	return f.requests()
}

func (f *jobFile) requests() ([]tuning.Request, error) {
	if len(f.Nets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "job file defines no nets")
	}

	var b *board.Board
	if len(f.Obstacles) > 0 || f.Outline != nil {
		b = &board.Board{Obstacles: f.Obstacles, Outline: f.Outline}
	}

	seen := make(map[string]bool, len(f.Nets))
	reqs := make([]tuning.Request, 0, len(f.Nets))
	for i, n := range f.Nets {
		if n.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "net %d: missing name", i+1)
		}
		if seen[n.Name] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate net %q", n.Name)
		}
		seen[n.Name] = true

		req := tuning.Request{
			Net:       n.Name,
			Settings:  f.Settings,
			Width:     orDefault(n.Width, f.Width),
			Clearance: orDefault(n.Clearance, f.Clearance),
			Dual:      n.Dual,
			Gap:       n.Gap,
			FlipSide:  f.FlipSide,
			Path:      n.Path,
			Board:     b,
		}
		if n.FlipSide != nil {
			req.FlipSide = *n.FlipSide
		}
		if n.TargetLength != nil {
			req.Settings.TargetLength = *n.TargetLength
		}
		if n.LengthTolerance != nil {
			req.Settings.LengthTolerance = *n.LengthTolerance
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// ReadJSON decodes a JSON array of requests from r.
func ReadJSON(r io.Reader) ([]tuning.Request, error) {
	var reqs []tuning.Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&reqs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode job file")
	}
	if len(reqs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "job file defines no nets")
	}
	return reqs, nil
}

// ImportFile reads a job file from path. Files ending in .json are decoded
// with [ReadJSON]; everything else is treated as TOML.
func ImportFile(path string) ([]tuning.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(f)
	}
	return ReadTOML(f)
}
