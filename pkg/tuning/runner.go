package tuning

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/meander/pkg/cache"
	"github.com/matzehuels/meander/pkg/observability"
)

// Runner encapsulates tuning with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Tune tunes one net, serving repeated requests from the cache.
func (r *Runner) Tune(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	hooks := observability.Tuning()
	hooks.OnTuneStart(ctx, req.Net)
	start := time.Now()

	hash, err := req.Hash()
	cacheable := err == nil
	if !cacheable {
		r.Logger.Warn("request not cacheable", "net", req.Net, "err", err)
	}
	cacheKey := r.Keyer.TuneKey(req.Net, hash)

	// Try cache first (unless refresh requested)
	if cacheable && !req.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var res Result
			if err := json.Unmarshal(data, &res); err == nil {
				observability.Cache().OnCacheHit(ctx, "tune")
				res.CacheInfo.Hit = true
				res.Request.Refresh = req.Refresh
				r.Logger.Debug("tuning cache hit", "net", req.Net)
				hooks.OnTuneComplete(ctx, req.Net, len(res.Units), time.Since(start), nil)
				return &res, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "tune")
	}

	res, err := TuneNet(req)
	if err != nil {
		hooks.OnTuneComplete(ctx, req.Net, 0, time.Since(start), err)
		return nil, err
	}

	if data, err := json.Marshal(res); cacheable && err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLTune); err == nil {
			observability.Cache().OnCacheSet(ctx, "tune", len(data))
		}
	}

	r.Logger.Info("tuned net",
		"net", req.Net,
		"units", len(res.Units),
		"meanders", res.Stats.Meanders,
		"baseline", int64(res.BaselineLength),
		"length", int64(res.Length),
		"status", res.Status,
		"duration", res.Stats.Duration)

	hooks.OnTuneComplete(ctx, req.Net, len(res.Units), time.Since(start), nil)
	return res, nil
}

// TuneAll tunes the requests in parallel. Results are returned in request
// order; the first error cancels the remaining nets.
func (r *Runner) TuneAll(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range reqs {
		g.Go(func() error {
			res, err := r.Tune(ctx, reqs[i])
			if err != nil {
				return fmt.Errorf("net %q: %w", reqs[i].Net, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
