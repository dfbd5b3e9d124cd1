// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about package opens and saves and graph rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the packaging engine
// stays free of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPackageHooks(&myPackageHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Package().OnOpenStart(source)
//	// ... read the container ...
//	observability.Package().OnOpenComplete(source, partCount, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Package Hooks
// =============================================================================

// PackageHooks receives events from opening and saving OPC packages.
type PackageHooks interface {
	// Open events. source is a path, or "<memory>" for in-memory sources.
	OnOpenStart(source string)
	OnOpenComplete(source string, partCount int, duration time.Duration, err error)

	// Save events. dest is a path, or "<stream>" for writer destinations.
	OnSaveStart(dest string)
	OnSaveComplete(dest string, partCount int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from relationship graph rendering.
type RenderHooks interface {
	OnRenderStart(format string, nodeCount int)
	OnRenderComplete(format string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPackageHooks is a no-op implementation of PackageHooks.
type NoopPackageHooks struct{}

func (NoopPackageHooks) OnOpenStart(string)                                {}
func (NoopPackageHooks) OnOpenComplete(string, int, time.Duration, error) {}
func (NoopPackageHooks) OnSaveStart(string)                                {}
func (NoopPackageHooks) OnSaveComplete(string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(string, int)                     {}
func (NoopRenderHooks) OnRenderComplete(string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	packageHooks PackageHooks = NoopPackageHooks{}
	renderHooks  RenderHooks  = NoopRenderHooks{}
	hooksMu      sync.RWMutex
)

// SetPackageHooks registers custom package hooks.
// This should be called once at application startup before any package is opened.
func SetPackageHooks(h PackageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		packageHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Package returns the registered package hooks.
func Package() PackageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return packageHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	packageHooks = NoopPackageHooks{}
	renderHooks = NoopRenderHooks{}
}
