package webview

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// Runtime binds a goja VM to a Document. It backs the eval command and lets
// pages register reactive event listeners the way a framework-rendered UI
// would.
type Runtime struct {
	vm  *goja.Runtime
	doc *Document
	log *zap.Logger
}

// NewRuntime creates a VM with document and window globals wired to doc.
func NewRuntime(doc *Document, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runtime{
		vm:  goja.New(),
		doc: doc,
		log: logger,
	}
	if err := r.setupGlobals(); err != nil {
		return nil, err
	}
	return r, nil
}

// Eval executes script in the global scope and returns its exported value.
// No sandboxing guarantee is made beyond the VM itself.
func (r *Runtime) Eval(script string) (any, error) {
	val, err := r.vm.RunString(script)
	if err != nil {
		return nil, err
	}
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil, nil
	}
	return val.Export(), nil
}

func (r *Runtime) setupGlobals() error {
	// Node-isms stay out of the page scope.
	r.vm.Set("require", goja.Undefined())
	r.vm.Set("process", goja.Undefined())
	r.vm.Set("module", goja.Undefined())

	document := r.vm.NewObject()
	document.Set("querySelector", func(selector string) goja.Value {
		el, ok := r.doc.QueryOne(selector)
		if !ok {
			return goja.Null()
		}
		return r.elementProxy(el)
	})
	document.Set("querySelectorAll", func(selector string) goja.Value {
		els := r.doc.Query(selector)
		out := make([]goja.Value, len(els))
		for i, el := range els {
			out[i] = r.elementProxy(el)
		}
		return r.vm.ToValue(out)
	})
	document.Set("getElementById", func(id string) goja.Value {
		el, ok := r.doc.QueryOne("#" + id)
		if !ok {
			return goja.Null()
		}
		return r.elementProxy(el)
	})
	document.DefineAccessorProperty("title",
		r.vm.ToValue(func() string { return r.doc.Title() }),
		r.vm.ToValue(func(t string) { r.doc.SetTitle(t) }),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
	document.DefineAccessorProperty("body",
		r.vm.ToValue(func() goja.Value { return r.elementProxy(r.doc.Body()) }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	r.vm.Set("document", document)

	location := r.vm.NewObject()
	location.DefineAccessorProperty("href",
		r.vm.ToValue(func() string { return r.doc.Location() }),
		nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	window := r.vm.NewObject()
	window.Set("location", location)
	window.Set("document", document)
	r.vm.Set("window", window)
	r.vm.Set("location", location)

	console := r.vm.NewObject()
	console.Set("log", r.makeConsoleFunc("log"))
	console.Set("warn", r.makeConsoleFunc("warn"))
	console.Set("error", r.makeConsoleFunc("error"))
	r.vm.Set("console", console)

	return nil
}

func (r *Runtime) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		r.log.Info("console",
			zap.String("level", level),
			zap.String("message", strings.Join(parts, " ")))
		return goja.Undefined()
	}
}

// elementProxy exposes a live view of el: value/checked/textContent read and
// write through the document overlays, not a snapshot.
func (r *Runtime) elementProxy(el *Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	obj := r.vm.NewObject()
	obj.Set("tagName", strings.ToUpper(el.TagName()))
	obj.Set("id", el.ID())
	obj.DefineAccessorProperty("value",
		r.vm.ToValue(func() string { return el.Value() }),
		r.vm.ToValue(func(v string) { el.SetValue(v) }),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("checked",
		r.vm.ToValue(func() bool { return el.Checked() }),
		r.vm.ToValue(func(v bool) { el.SetChecked(v) }),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("textContent",
		r.vm.ToValue(func() string { return el.Text() }),
		r.vm.ToValue(func(t string) { el.SetText(t) }),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.Set("getAttribute", func(name string) goja.Value {
		v, ok := el.Attr(name)
		if !ok {
			return goja.Null()
		}
		return r.vm.ToValue(v)
	})
	obj.Set("setAttribute", func(name, value string) {
		el.SetAttr(name, value)
	})
	obj.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		eventType := call.Arguments[0].String()
		fn, ok := goja.AssertFunction(call.Arguments[1])
		if !ok {
			return goja.Undefined()
		}
		el.On(eventType, func(ev *Event) {
			if _, err := fn(goja.Undefined(), r.eventProxy(ev)); err != nil {
				r.log.Warn("listener threw", zap.String("event", eventType), zap.Error(err))
			}
		})
		return goja.Undefined()
	})
	obj.Set("click", func() { el.Click() })
	obj.Set("focus", func() { el.Focus() })
	obj.Set("blur", func() { el.Blur() })
	return obj
}

func (r *Runtime) eventProxy(ev *Event) goja.Value {
	obj := r.vm.NewObject()
	obj.Set("type", ev.Type)
	obj.Set("key", ev.Key)
	obj.Set("target", r.elementProxy(ev.Target))
	obj.Set("stopPropagation", func() { ev.StopPropagation() })
	return obj
}

// String implements fmt.Stringer for debug logging.
func (r *Runtime) String() string {
	return fmt.Sprintf("webview.Runtime(%s)", r.doc.Location())
}
