package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/meander/pkg/tuning"
)

// WriteJSON encodes tuning results as indented JSON and writes them to w.
func WriteJSON(results []*tuning.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes tuning results to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(results []*tuning.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(results, f)
}

// ReadResults decodes results written by [WriteJSON].
func ReadResults(r io.Reader) ([]*tuning.Result, error) {
	var results []*tuning.Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return results, nil
}
