package automation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

func newResolverFixture(t *testing.T) (*webview.Document, *DOMResolver) {
	t.Helper()
	doc, err := webview.NewDocument(commandFixture, nil)
	require.NoError(t, err)
	return doc, NewResolver(doc)
}

func TestResolveNowFindsFirstMatch(t *testing.T) {
	_, r := newResolverFixture(t)

	el, ok := r.ResolveNow("li")
	require.True(t, ok)
	assert.Equal(t, "one", el.Text())

	_, ok = r.ResolveNow("#missing")
	assert.False(t, ok)
}

func TestResolveReturnsImmediatelyWhenPresent(t *testing.T) {
	_, r := newResolverFixture(t)

	start := time.Now()
	el, ok := r.Resolve(context.Background(), "#heading", 5*time.Second)
	require.True(t, ok)
	assert.Equal(t, "heading", el.ID())
	assert.Less(t, time.Since(start), PollInterval, "no poll pause on a hit")
}

func TestResolveZeroTimeoutIsSingleCheck(t *testing.T) {
	_, r := newResolverFixture(t)

	start := time.Now()
	_, ok := r.Resolve(context.Background(), "#missing", 0)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), PollInterval)
}

func TestResolveHonorsContextCancellation(t *testing.T) {
	_, r := newResolverFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, ok := r.Resolve(ctx, "#missing", 5*time.Second)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second, "cancellation cuts the wait short")
}
