package webview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRuntimeFixture(t *testing.T) (*Document, *Runtime) {
	t.Helper()
	doc := newFixture(t)
	rt, err := NewRuntime(doc, nil)
	require.NoError(t, err)
	return doc, rt
}

func TestEvalLiteral(t *testing.T) {
	_, rt := newRuntimeFixture(t)

	v, err := rt.Eval("1 + 2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	v, err = rt.Eval("'a' + 'b'")
	require.NoError(t, err)
	assert.Equal(t, "ab", v)
}

func TestEvalUndefinedIsNil(t *testing.T) {
	_, rt := newRuntimeFixture(t)

	v, err := rt.Eval("undefined")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = rt.Eval("null")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEvalSyntaxError(t *testing.T) {
	_, rt := newRuntimeFixture(t)

	_, err := rt.Eval("function {")
	assert.Error(t, err)
}

func TestEvalThrow(t *testing.T) {
	_, rt := newRuntimeFixture(t)

	_, err := rt.Eval(`throw new Error("boom")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDocumentGlobals(t *testing.T) {
	_, rt := newRuntimeFixture(t)

	v, err := rt.Eval(`document.querySelector('#heading').textContent`)
	require.NoError(t, err)
	assert.Equal(t, "Hello", v)

	v, err = rt.Eval(`document.querySelectorAll('#items li').length`)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	v, err = rt.Eval(`document.getElementById('orphan').tagName`)
	require.NoError(t, err)
	assert.Equal(t, "DIV", v)

	v, err = rt.Eval(`document.querySelector('#missing')`)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = rt.Eval(`document.title`)
	require.NoError(t, err)
	assert.Equal(t, "Fixture", v)

	v, err = rt.Eval(`window.location.href`)
	require.NoError(t, err)
	assert.Equal(t, "/", v)
}

func TestProxyIsLive(t *testing.T) {
	doc, rt := newRuntimeFixture(t)

	_, err := rt.Eval(`document.querySelector('#user').value = 'scripted'`)
	require.NoError(t, err)

	input, _ := doc.QueryOne("#user")
	assert.Equal(t, "scripted", input.Value(), "script writes reach the document")

	input.SetValue("native")
	v, err := rt.Eval(`document.querySelector('#user').value`)
	require.NoError(t, err)
	assert.Equal(t, "native", v, "native writes are visible to later reads")
}

func TestProxyAttributes(t *testing.T) {
	_, rt := newRuntimeFixture(t)

	v, err := rt.Eval(`document.querySelector('#heading').getAttribute('class')`)
	require.NoError(t, err)
	assert.Equal(t, "big", v)

	v, err = rt.Eval(`document.querySelector('#heading').getAttribute('nope')`)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = rt.Eval(`document.querySelector('#heading').setAttribute('data-k', 'v')`)
	require.NoError(t, err)
	v, err = rt.Eval(`document.querySelector('#heading').getAttribute('data-k')`)
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestScriptListenerReceivesNativeEvents(t *testing.T) {
	doc, rt := newRuntimeFixture(t)

	_, err := rt.Eval(`
		var hits = [];
		document.querySelector('#go').addEventListener('click', function (ev) {
			hits.push(ev.type + ':' + ev.target.id);
		});
	`)
	require.NoError(t, err)

	btn, _ := doc.QueryOne("#go")
	btn.Click()

	v, err := rt.Eval(`hits.join(',')`)
	require.NoError(t, err)
	assert.Equal(t, "click:go", v)
}

func TestScriptCheckboxToggle(t *testing.T) {
	doc, rt := newRuntimeFixture(t)

	_, err := rt.Eval(`document.querySelector('#agree').click()`)
	require.NoError(t, err)

	box, _ := doc.QueryOne("#agree")
	assert.True(t, box.Checked())
}

func TestNodeGlobalsAbsent(t *testing.T) {
	_, rt := newRuntimeFixture(t)

	for _, name := range []string{"require", "process", "module"} {
		v, err := rt.Eval("typeof " + name)
		require.NoError(t, err)
		assert.Equal(t, "undefined", v, name)
	}
}
