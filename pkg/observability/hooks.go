// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about rendering, exports, uploads, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so there are no import
// cycles and the library packages stay free of any metrics framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnCaptureStart(ctx, 1024, 576, scale)
//	// ... paint and encode ...
//	observability.Render().OnCaptureComplete(ctx, len(png), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from layout and rasterization.
type RenderHooks interface {
	// Compose events
	OnComposeStart(ctx context.Context, layers int)
	OnComposeComplete(ctx context.Context, duration time.Duration, err error)

	// Capture events
	OnCaptureStart(ctx context.Context, width, height int, scale float64)
	OnCaptureComplete(ctx context.Context, size int, duration time.Duration, err error)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export state machine.
type ExportHooks interface {
	// OnExportStart records a transition from idle to exporting.
	OnExportStart(ctx context.Context)

	// OnExportComplete records the return to idle. name is empty on failure.
	OnExportComplete(ctx context.Context, name string, duration time.Duration, err error)

	// OnExportBusy records a trigger dropped because an export was in flight.
	OnExportBusy(ctx context.Context)
}

// =============================================================================
// Studio Hooks
// =============================================================================

// StudioHooks receives events from session state changes.
type StudioHooks interface {
	// OnUploadComplete records a finished upload read. size is the length of
	// the encoded reference, zero on failure.
	OnUploadComplete(ctx context.Context, size int, duration time.Duration, err error)

	// OnStyleChange records a patch applied to the style.
	OnStyleChange(ctx context.Context, fields []string)
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
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnComposeStart(context.Context, int)                          {}
func (NoopRenderHooks) OnComposeComplete(context.Context, time.Duration, error)      {}
func (NoopRenderHooks) OnCaptureStart(context.Context, int, int, float64)            {}
func (NoopRenderHooks) OnCaptureComplete(context.Context, int, time.Duration, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context)                                  {}
func (NoopExportHooks) OnExportComplete(context.Context, string, time.Duration, error) {}
func (NoopExportHooks) OnExportBusy(context.Context)                                   {}

// NoopStudioHooks is a no-op implementation of StudioHooks.
type NoopStudioHooks struct{}

func (NoopStudioHooks) OnUploadComplete(context.Context, int, time.Duration, error) {}
func (NoopStudioHooks) OnStyleChange(context.Context, []string)                    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	exportHooks ExportHooks = NoopExportHooks{}
	studioHooks StudioHooks = NoopStudioHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetStudioHooks registers custom studio hooks.
// This should be called once at application startup before any session starts.
func SetStudioHooks(h StudioHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		studioHooks = h
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

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Studio returns the registered studio hooks.
func Studio() StudioHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return studioHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	exportHooks = NoopExportHooks{}
	studioHooks = NoopStudioHooks{}
	cacheHooks = NoopCacheHooks{}
}
