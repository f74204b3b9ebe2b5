package automation

import (
	"context"
	"time"

	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

const (
	// PollInterval is the fixed pause between selector checks.
	PollInterval = 100 * time.Millisecond
	// DefaultTimeout bounds selector resolution when the caller gives none.
	DefaultTimeout = 5 * time.Second
)

// Resolver locates elements for selector-based commands.
type Resolver interface {
	// Resolve polls for selector until found or timeout elapses. Resolution
	// terminates within timeout plus one poll interval of wall-clock time.
	Resolve(ctx context.Context, selector string, timeout time.Duration) (*webview.Element, bool)
	// ResolveNow performs a single immediate lookup with no waiting.
	ResolveNow(selector string) (*webview.Element, bool)
}

// DOMResolver resolves selectors against a live document.
type DOMResolver struct {
	doc *webview.Document
}

// NewResolver creates a resolver bound to doc.
func NewResolver(doc *webview.Document) *DOMResolver {
	return &DOMResolver{doc: doc}
}

func (r *DOMResolver) ResolveNow(selector string) (*webview.Element, bool) {
	return r.doc.QueryOne(selector)
}

func (r *DOMResolver) Resolve(ctx context.Context, selector string, timeout time.Duration) (*webview.Element, bool) {
	if timeout < 0 {
		timeout = 0
	}
	// Wall-clock deadline, not iteration count: slow environments still get
	// the full real-time window.
	deadline := time.Now().Add(timeout)
	for {
		if el, ok := r.doc.QueryOne(selector); ok {
			return el, true
		}
		if !time.Now().Before(deadline) {
			return nil, false
		}
		timer := time.NewTimer(PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, false
		case <-timer.C:
		}
	}
}
