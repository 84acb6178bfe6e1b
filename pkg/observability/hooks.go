// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about tuning runs,
// cache operations and served API requests. The defaults are no-ops, so
// libraries can emit events unconditionally.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTuningHooks(&myTuningHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Tuning().OnTuneStart(ctx, net)
//	// ... meander the net ...
//	observability.Tuning().OnTuneComplete(ctx, net, units, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Tuning Hooks
// =============================================================================

// TuningHooks receives events from the tuning pipeline.
type TuningHooks interface {
	// Tune events
	OnTuneStart(ctx context.Context, net string)
	OnTuneComplete(ctx context.Context, net string, units int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTuningHooks is a no-op implementation of TuningHooks.
type NoopTuningHooks struct{}

func (NoopTuningHooks) OnTuneStart(context.Context, string)                                 {}
func (NoopTuningHooks) OnTuneComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopTuningHooks) OnRenderStart(context.Context, string)                               {}
func (NoopTuningHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	tuningHooks TuningHooks = NoopTuningHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetTuningHooks registers custom tuning hooks.
// This should be called once at application startup before any tuning runs.
func SetTuningHooks(h TuningHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		tuningHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Tuning returns the registered tuning hooks.
func Tuning() TuningHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return tuningHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	tuningHooks = NoopTuningHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
