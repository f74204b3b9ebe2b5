package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

func echoBinding(tag string) webview.HostFunc {
	return func(_ context.Context, _ string, _ any) (any, error) {
		return tag, nil
	}
}

func TestResolvePrefersModernBinding(t *testing.T) {
	host := webview.NewHost()
	host.Bind(BindingModern, echoBinding("modern"))
	host.Bind(BindingLegacy, echoBinding("legacy"))
	host.Bind(BindingGlobal, echoBinding("global"))

	h := NewBridge(host, nil).Resolve()
	assert.Equal(t, SourceV2, h.Source)
	require.True(t, h.Available())

	v, err := h.Invoke(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "modern", v)
}

func TestResolveFallsBackToLegacy(t *testing.T) {
	host := webview.NewHost()
	host.Bind(BindingLegacy, echoBinding("legacy"))
	host.Bind(BindingGlobal, echoBinding("global"))

	h := NewBridge(host, nil).Resolve()
	assert.Equal(t, SourceV1, h.Source)
}

func TestResolveFallsBackToGlobal(t *testing.T) {
	host := webview.NewHost()
	host.Bind(BindingGlobal, echoBinding("global"))

	h := NewBridge(host, nil).Resolve()
	assert.Equal(t, SourceGlobal, h.Source)
	assert.True(t, h.Available())
}

func TestResolveExhaustionIsDegradedNotFatal(t *testing.T) {
	h := NewBridge(webview.NewHost(), nil).Resolve()

	assert.Equal(t, SourceUnavailable, h.Source)
	assert.False(t, h.Available())

	_, err := h.Invoke(context.Background(), "anything", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolveIsMemoized(t *testing.T) {
	host := webview.NewHost()
	b := NewBridge(host, nil)

	first := b.Resolve()
	assert.Equal(t, SourceUnavailable, first.Source)

	// A binding appearing after resolution must not change the outcome.
	host.Bind(BindingModern, echoBinding("late"))
	second := b.Resolve()
	assert.Equal(t, SourceUnavailable, second.Source)
	assert.False(t, second.Available())
}

func TestNilBindingIsNotCallable(t *testing.T) {
	host := webview.NewHost()
	host.Bind(BindingModern, nil)
	host.Bind(BindingLegacy, echoBinding("legacy"))

	h := NewBridge(host, nil).Resolve()
	assert.Equal(t, SourceV1, h.Source, "nil slot is skipped, not treated as a hit")
}
