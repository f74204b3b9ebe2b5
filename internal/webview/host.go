package webview

import (
	"context"
	"sync"
)

// HostFunc is a host-side function the page context can invoke.
type HostFunc func(ctx context.Context, command string, payload any) (any, error)

// Host is the binding surface between the execution context and the owning
// native process. The host runtime installs named call functions here; the
// capability bridge probes this table at startup to pick a transport.
//
// Unlike the rest of the webview, the binding table is safe for concurrent
// use: the native side installs bindings while page code runs.
type Host struct {
	mu       sync.RWMutex
	bindings map[string]HostFunc
}

// NewHost creates an empty binding table.
func NewHost() *Host {
	return &Host{bindings: make(map[string]HostFunc)}
}

// Bind installs fn under name, replacing any previous binding.
func (h *Host) Bind(name string, fn HostFunc) {
	h.mu.Lock()
	h.bindings[name] = fn
	h.mu.Unlock()
}

// Lookup returns the binding for name. A name bound to nil is reported as
// absent, so a probe only succeeds on a callable function.
func (h *Host) Lookup(name string) (HostFunc, bool) {
	h.mu.RLock()
	fn, ok := h.bindings[name]
	h.mu.RUnlock()
	if !ok || fn == nil {
		return nil, false
	}
	return fn, true
}
