package webview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePage = `<!DOCTYPE html><html><head><title>Fixture</title></head><body>
<h1 id="heading" class="big">Hello</h1>
<form id="login">
  <input id="user" type="text" value="anon"/>
  <div id="inside"><button id="go">Go</button></div>
</form>
<div id="orphan">loose</div>
<input id="agree" type="checkbox"/>
<input id="subscribed" type="checkbox" checked/>
<select id="lang"><option value="go">Go</option><option value="rs" selected>Rust</option></select>
<select id="first-wins"><option value="a">A</option><option value="b">B</option></select>
<textarea id="notes">draft</textarea>
<ul id="items"><li>one</li><li>two</li><li>three</li></ul>
</body></html>`

func newFixture(t *testing.T) *Document {
	t.Helper()
	doc, err := NewDocument(fixturePage, nil)
	require.NoError(t, err)
	return doc
}

func TestQueryOne(t *testing.T) {
	doc := newFixture(t)

	el, ok := doc.QueryOne("#heading")
	require.True(t, ok)
	assert.Equal(t, "h1", el.TagName())
	assert.Equal(t, "Hello", el.Text())

	_, ok = doc.QueryOne("#missing")
	assert.False(t, ok)
}

func TestQueryDocumentOrder(t *testing.T) {
	doc := newFixture(t)

	els := doc.Query("#items li")
	require.Len(t, els, 3)
	assert.Equal(t, "one", els[0].Text())
	assert.Equal(t, "two", els[1].Text())
	assert.Equal(t, "three", els[2].Text())
}

func TestTitle(t *testing.T) {
	doc := newFixture(t)
	assert.Equal(t, "Fixture", doc.Title())

	doc.SetTitle("Renamed")
	assert.Equal(t, "Renamed", doc.Title())
}

func TestAttributes(t *testing.T) {
	doc := newFixture(t)
	el, _ := doc.QueryOne("#heading")

	v, ok := el.Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "big", v)

	_, ok = el.Attr("data-x")
	assert.False(t, ok)

	el.SetAttr("data-x", "1")
	v, ok = el.Attr("data-x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestValueFallbacks(t *testing.T) {
	doc := newFixture(t)

	input, _ := doc.QueryOne("#user")
	assert.Equal(t, "anon", input.Value(), "input falls back to value attribute")

	area, _ := doc.QueryOne("#notes")
	assert.Equal(t, "draft", area.Value(), "textarea falls back to text content")

	sel, _ := doc.QueryOne("#lang")
	assert.Equal(t, "rs", sel.Value(), "select picks the selected option")

	first, _ := doc.QueryOne("#first-wins")
	assert.Equal(t, "a", first.Value(), "select defaults to the first option")

	input.SetValue("alice")
	assert.Equal(t, "alice", input.Value(), "property overlay wins once written")
}

func TestCheckedFallback(t *testing.T) {
	doc := newFixture(t)

	agree, _ := doc.QueryOne("#agree")
	assert.False(t, agree.Checked())

	sub, _ := doc.QueryOne("#subscribed")
	assert.True(t, sub.Checked(), "checked attribute in markup")

	sub.SetChecked(false)
	assert.False(t, sub.Checked())
}

func TestClosest(t *testing.T) {
	doc := newFixture(t)

	btn, _ := doc.QueryOne("#go")
	form, ok := btn.Closest("form")
	require.True(t, ok)
	assert.Equal(t, "login", form.ID())

	orphan, _ := doc.QueryOne("#orphan")
	_, ok = orphan.Closest("form")
	assert.False(t, ok)
}

func TestNavigateResetsState(t *testing.T) {
	doc := newFixture(t)
	doc.RegisterPage("/settings", `<html><head><title>Settings</title></head><body><p id="p">s</p></body></html>`)

	input, _ := doc.QueryOne("#user")
	input.SetValue("dirty")
	input.Focus()

	fired := 0
	input.On("input", func(*Event) { fired++ })

	require.NoError(t, doc.Navigate("/settings"))
	assert.Equal(t, "/settings", doc.Location())
	assert.Equal(t, "Settings", doc.Title())

	_, ok := doc.QueryOne("#user")
	assert.False(t, ok, "old page is gone")
	assert.Nil(t, doc.Focused(), "focus is dropped on navigation")
	assert.Equal(t, 0, fired, "stale listeners never fire")
}

func TestNavigateUnknownPathLoadsBlank(t *testing.T) {
	doc := newFixture(t)
	require.NoError(t, doc.Navigate("/nowhere"))
	assert.Equal(t, "/nowhere", doc.Location())
	assert.Equal(t, "", doc.Title())
}

func TestDocumentHTML(t *testing.T) {
	doc := newFixture(t)
	src, err := doc.HTML()
	require.NoError(t, err)
	assert.Contains(t, src, `<h1 id="heading"`)

	el, _ := doc.QueryOne("#orphan")
	outer, err := el.HTML()
	require.NoError(t, err)
	assert.Equal(t, `<div id="orphan">loose</div>`, outer)
}

func TestFocusTracking(t *testing.T) {
	doc := newFixture(t)
	input, _ := doc.QueryOne("#user")

	assert.Nil(t, doc.Focused())
	input.Focus()
	require.NotNil(t, doc.Focused())
	assert.True(t, doc.Focused().Same(input))

	input.Blur()
	assert.Nil(t, doc.Focused())
}

func TestScrollTarget(t *testing.T) {
	doc := newFixture(t)
	el, _ := doc.QueryOne("#items")

	assert.Nil(t, doc.ScrollTarget())
	doc.ScrollTo(el)
	require.NotNil(t, doc.ScrollTarget())
	assert.True(t, doc.ScrollTarget().Same(el))
}
