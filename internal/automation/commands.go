package automation

import (
	"context"
	"strings"
	"time"

	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

// Settle delays let asynchronous re-rendering finish before the next
// command reads DOM state.
const (
	navigateSettle = 300 * time.Millisecond
	clickSettle    = 100 * time.Millisecond
	scrollSettle   = 100 * time.Millisecond
)

// Deps are the collaborators the command catalog is built over. Sleep is
// injectable so tests do not pay real settle delays.
type Deps struct {
	Doc      *webview.Document
	Resolver Resolver
	Sim      *Simulator
	Runtime  *webview.Runtime
	Sleep    func(time.Duration)
}

// NewRegistry builds the fixed command catalog. Every handler validates its
// required arguments before touching the DOM, and selector commands either
// wait for asynchronous rendering or fail immediately per their contract.
func NewRegistry(deps Deps) *Registry {
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	c := &catalog{deps}
	r := newRegistry()

	r.register("navigate", c.navigate)
	r.register("click", c.click)
	r.register("type", c.typeText)
	r.register("clear", c.clear)
	r.register("getText", c.getText)
	r.register("getValue", c.getValue)
	r.register("getAttribute", c.getAttribute)
	r.register("exists", c.exists)
	r.register("waitFor", c.waitFor)
	r.register("select", c.selectOption)
	r.register("check", c.check)
	r.register("uncheck", c.uncheck)
	r.register("getUrl", c.getURL)
	r.register("getTitle", c.getTitle)
	r.register("eval", c.eval)
	r.register("getElements", c.getElements)
	r.register("scrollTo", c.scrollTo)
	r.register("getHtml", c.getHTML)
	r.register("wait", c.wait)
	r.register("focus", c.focus)
	r.register("blur", c.blur)
	r.register("pressKey", c.pressKey)
	r.register("submit", c.submit)

	return r
}

type catalog struct {
	Deps
}

// Argument extraction. Commands fail fast on a missing or empty required
// key, before any element lookup happens.

func stringArg(args map[string]any, key string) (string, *Result) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", Failure(KindMissingArgument, "missing required argument: %s", key)
	}
	return v, nil
}

func optionalString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// intValue accepts the numeric shapes JSON decoding produces.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func (c *catalog) resolveWait(ctx context.Context, selector string) (*webview.Element, *Result) {
	el, ok := c.Resolver.Resolve(ctx, selector, DefaultTimeout)
	if !ok {
		return nil, Failure(KindElementNotFound, "element not found: %s", selector)
	}
	return el, nil
}

func (c *catalog) resolveNow(selector string) (*webview.Element, *Result) {
	el, ok := c.Resolver.ResolveNow(selector)
	if !ok {
		return nil, Failure(KindElementNotFound, "element not found: %s", selector)
	}
	return el, nil
}

func (c *catalog) navigate(ctx context.Context, args map[string]any) *Result {
	path, fail := stringArg(args, "path")
	if fail != nil {
		return fail
	}
	if err := c.Doc.Navigate(path); err != nil {
		return Failure(KindInternal, "navigate failed: %v", err)
	}
	c.Sleep(navigateSettle)
	return Success(nil)
}

func (c *catalog) click(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveWait(ctx, selector)
	if fail != nil {
		return fail
	}
	c.Sim.Click(el)
	c.Sleep(clickSettle)
	return Success(nil)
}

func (c *catalog) typeText(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	text, ok := args["text"].(string)
	if !ok {
		return Failure(KindMissingArgument, "missing required argument: text")
	}
	el, fail := c.resolveWait(ctx, selector)
	if fail != nil {
		return fail
	}
	c.Sim.SetValue(el, text)
	return Success(nil)
}

func (c *catalog) clear(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	c.Sim.SetValue(el, "")
	return Success(nil)
}

func (c *catalog) getText(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveWait(ctx, selector)
	if fail != nil {
		return fail
	}
	return Success(strings.TrimSpace(el.Text()))
}

func (c *catalog) getValue(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	return Success(el.Value())
}

func (c *catalog) getAttribute(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	attribute, fail := stringArg(args, "attribute")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	v, present := el.Attr(attribute)
	if !present {
		return Success(nil)
	}
	return Success(v)
}

func (c *catalog) exists(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	_, ok := c.Resolver.ResolveNow(selector)
	return Success(ok)
}

func (c *catalog) waitFor(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	timeout := DefaultTimeout
	if raw, ok := args["timeout"]; ok {
		ms, ok := intValue(raw)
		if !ok || ms < 0 {
			return Failure(KindMissingArgument, "timeout must be a non-negative number of milliseconds")
		}
		timeout = time.Duration(ms) * time.Millisecond
	}
	_, found := c.Resolver.Resolve(ctx, selector, timeout)
	return Success(found)
}

func (c *catalog) selectOption(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	value, ok := args["value"].(string)
	if !ok {
		return Failure(KindMissingArgument, "missing required argument: value")
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	if el.TagName() != "select" {
		return Failure(KindWrongElementType, "element %s is a %s, not a select", selector, el.TagName())
	}
	c.Sim.SetValue(el, value)
	return Success(nil)
}

func (c *catalog) check(ctx context.Context, args map[string]any) *Result {
	return c.setChecked(args, true)
}

func (c *catalog) uncheck(ctx context.Context, args map[string]any) *Result {
	return c.setChecked(args, false)
}

func (c *catalog) setChecked(args map[string]any, want bool) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	if !el.IsCheckbox() {
		return Failure(KindWrongElementType, "element %s is not a checkbox", selector)
	}
	c.Sim.SetChecked(el, want)
	return Success(nil)
}

func (c *catalog) getURL(ctx context.Context, args map[string]any) *Result {
	return Success(c.Doc.Location())
}

func (c *catalog) getTitle(ctx context.Context, args map[string]any) *Result {
	return Success(c.Doc.Title())
}

// eval is a deliberate escape hatch: the script runs unguarded in the
// hosting context's global scope.
func (c *catalog) eval(ctx context.Context, args map[string]any) *Result {
	script, fail := stringArg(args, "script")
	if fail != nil {
		return fail
	}
	value, err := c.Runtime.Eval(script)
	if err != nil {
		return Failure(KindScriptError, "%v", err)
	}
	return Success(value)
}

func (c *catalog) getElements(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	els := c.Doc.Query(selector)
	texts := make([]string, len(els))
	for i, el := range els {
		texts[i] = strings.TrimSpace(el.Text())
	}
	return Success(map[string]any{
		"count": len(els),
		"texts": texts,
	})
}

func (c *catalog) scrollTo(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveWait(ctx, selector)
	if fail != nil {
		return fail
	}
	c.Doc.ScrollTo(el)
	c.Sleep(scrollSettle)
	return Success(nil)
}

func (c *catalog) getHTML(ctx context.Context, args map[string]any) *Result {
	selector := optionalString(args, "selector")
	if selector == "" {
		src, err := c.Doc.HTML()
		if err != nil {
			return Failure(KindInternal, "serialize failed: %v", err)
		}
		return Success(src)
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	src, err := el.HTML()
	if err != nil {
		return Failure(KindInternal, "serialize failed: %v", err)
	}
	return Success(src)
}

func (c *catalog) wait(ctx context.Context, args map[string]any) *Result {
	raw, ok := args["ms"]
	if !ok {
		return Failure(KindMissingArgument, "missing required argument: ms")
	}
	ms, ok := intValue(raw)
	if !ok || ms < 0 {
		return Failure(KindMissingArgument, "ms must be a non-negative number of milliseconds")
	}
	c.Sleep(time.Duration(ms) * time.Millisecond)
	return Success(nil)
}

func (c *catalog) focus(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	el.Focus()
	return Success(nil)
}

func (c *catalog) blur(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	el.Blur()
	return Success(nil)
}

func (c *catalog) pressKey(ctx context.Context, args map[string]any) *Result {
	key, fail := stringArg(args, "key")
	if fail != nil {
		return fail
	}
	var target *webview.Element
	if selector := optionalString(args, "selector"); selector != "" {
		el, fail := c.resolveNow(selector)
		if fail != nil {
			return fail
		}
		target = el
	} else {
		target = c.Sim.KeyTarget()
	}
	c.Sim.PressKey(target, key)
	return Success(nil)
}

func (c *catalog) submit(ctx context.Context, args map[string]any) *Result {
	selector, fail := stringArg(args, "selector")
	if fail != nil {
		return fail
	}
	el, fail := c.resolveNow(selector)
	if fail != nil {
		return fail
	}
	if _, ok := c.Sim.Submit(el); !ok {
		return Failure(KindNoFormFound, "no form found for %s", selector)
	}
	return Success(nil)
}
