package transport

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

// probe order is a fixed priority chain; the first success wins and later
// entries are never attempted.
var probes = []struct {
	name   string
	source Source
}{
	{BindingModern, SourceV2},
	{BindingLegacy, SourceV1},
	{BindingGlobal, SourceGlobal},
}

// Bridge resolves the host transport exactly once. Re-probing never happens
// after success or exhaustion; a fresh probe requires a process restart.
type Bridge struct {
	host *webview.Host
	log  *zap.Logger

	once   sync.Once
	handle Handle
}

// NewBridge creates an unresolved bridge over the document's host surface.
func NewBridge(host *webview.Host, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{host: host, log: logger}
}

// Resolve walks the probe chain and returns the cached handle. Exhaustion
// yields a degraded handle rather than an error: DOM-only commands keep
// working when the host transport is missing.
func (b *Bridge) Resolve() Handle {
	b.once.Do(func() {
		for _, p := range probes {
			fn, ok := b.host.Lookup(p.name)
			if !ok {
				b.log.Debug("transport probe missed", zap.String("binding", p.name))
				continue
			}
			b.log.Info("host transport resolved",
				zap.String("binding", p.name),
				zap.String("source", string(p.source)))
			b.handle = Handle{Source: p.source, invoke: fn}
			return
		}
		b.log.Warn("no host transport available, running degraded")
		b.handle = Handle{Source: SourceUnavailable}
	})
	return b.handle
}
