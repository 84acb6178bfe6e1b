package tuning

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/meander/pkg/meander"
)

func testSettings() meander.Settings {
	return meander.Settings{
		Spacing:                100,
		MinAmplitude:           50,
		MaxAmplitude:           200,
		Step:                   10,
		CornerStyle:            meander.CornerRound,
		CornerRadiusPercentage: 50,
	}
}

func straightRequest(length int, target int64) Request {
	st := testSettings()
	st.TargetLength = target
	st.LengthTolerance = 20
	return Request{
		Net:       "CLK",
		Settings:  st,
		Width:     10,
		Clearance: 10,
		Path:      []Vertex{{X: 0, Y: 0}, {X: length, Y: 0}},
	}
}

func unitTypes(res *Result) []meander.Type {
	types := make([]meander.Type, 0, len(res.Units))
	for _, u := range res.Units {
		types = append(types, u.Type)
	}
	return types
}

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }
