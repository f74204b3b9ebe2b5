// Package transport negotiates how the execution context calls out to the
// owning native process. Multiple competing invocation surfaces may exist
// across host versions; the bridge probes them once, in fixed priority
// order, and caches the winner for the life of the process.
package transport

import (
	"context"
	"errors"

	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

// Binding names probed on the webview host surface, newest first.
const (
	// BindingModern is the invocation entry point current hosts install.
	BindingModern = "tauri.core.invoke"
	// BindingLegacy is the pre-v2 module name.
	BindingLegacy = "tauri.invoke"
	// BindingGlobal is the global call object some host runtimes expose
	// when neither module is injected.
	BindingGlobal = "__TAURI_IPC__"
)

// Source tags which probe produced a handle.
type Source string

const (
	SourceV2          Source = "v2"
	SourceV1          Source = "v1"
	SourceGlobal      Source = "global_fallback"
	SourceUnavailable Source = "unavailable"
)

// ErrUnavailable is returned by every call on a degraded handle.
var ErrUnavailable = errors.New("host transport unavailable")

// Handle is the resolved host transport. Immutable after resolution; any
// number of callers may use it without synchronization.
type Handle struct {
	Source Source
	invoke webview.HostFunc
}

// Available reports whether calls can reach the host.
func (h Handle) Available() bool {
	return h.invoke != nil
}

// Invoke calls the host with a command name and payload. On a degraded
// handle it fails immediately with ErrUnavailable.
func (h Handle) Invoke(ctx context.Context, command string, payload any) (any, error) {
	if h.invoke == nil {
		return nil, ErrUnavailable
	}
	return h.invoke(ctx, command, payload)
}
