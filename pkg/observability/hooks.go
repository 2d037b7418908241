// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages never depend on an observability backend. Instead the
// pipeline, the cache layer and database introspection call the hooks
// registered here, and main decides what to do with the events.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnParseStart(ctx, path)
//	// ... parse ...
//	observability.Pipeline().OnParseComplete(ctx, path, len(doc.Tables), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the diagram pipeline.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, schemaPath string)
	OnParseComplete(ctx context.Context, schemaPath string, tableCount int, duration time.Duration, err error)

	OnBuildStart(ctx context.Context, tableCount int)
	OnBuildComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// IntrospectHooks receives events from database catalog reads.
type IntrospectHooks interface {
	OnIntrospectStart(ctx context.Context, dialect string)
	OnIntrospectComplete(ctx context.Context, dialect string, tableCount int, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                   {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopIntrospectHooks is a no-op implementation of IntrospectHooks.
type NoopIntrospectHooks struct{}

func (NoopIntrospectHooks) OnIntrospectStart(context.Context, string)                               {}
func (NoopIntrospectHooks) OnIntrospectComplete(context.Context, string, int, time.Duration, error) {}

var (
	pipelineHooks   PipelineHooks   = NoopPipelineHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	introspectHooks IntrospectHooks = NoopIntrospectHooks{}
	hooksMu         sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetIntrospectHooks registers custom introspection hooks. Nil is ignored.
func SetIntrospectHooks(h IntrospectHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		introspectHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Introspect returns the registered introspection hooks.
func Introspect() IntrospectHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return introspectHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	introspectHooks = NoopIntrospectHooks{}
}
