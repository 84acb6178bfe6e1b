// Package cache provides the caching layer for tuning results and rendered
// artifacts.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [RedisCache]: shared cache for the API server
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are produced by a [Keyer] so that every entry point derives the same
// key for the same input. A tuning key hashes the canonical request; an
// artifact key hashes the result it was rendered from plus the render
// options:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.TuneKey("CLK", cache.Hash(requestJSON))
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// TTLs for the different entry kinds.
const (
	TTLTune     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// TuneKey identifies the tuning result for a net and request hash.
	TuneKey(net, requestHash string) string
	// ArtifactKey identifies a rendered artifact of a tuning result.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	Scale         float64 `json:"scale,omitempty"`
	ShowBaseline  bool    `json:"show_baseline,omitempty"`
	ShowObstacles bool    `json:"show_obstacles,omitempty"`
	UnitColors    bool    `json:"unit_colors,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TuneKey implements Keyer.
func (DefaultKeyer) TuneKey(net, requestHash string) string {
	return hashKey("tune", net, requestHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}
