package automation

import (
	"context"
	"sort"
)

// Handler executes one named command against the live document.
type Handler func(ctx context.Context, args map[string]any) *Result

// Registry maps command names to validated handlers. The catalog is fixed
// at construction and read-only afterwards.
type Registry struct {
	handlers map[string]Handler
}

func newRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) register(name string, h Handler) {
	r.handlers[name] = h
}

// Has reports whether name is a registered command.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the sorted command catalog.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dispatch resolves name and runs its handler. Unknown names fail with
// UnknownCommand; a panicking handler is recovered into an internal
// failure. No fault crosses this boundary.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (res *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Failure(KindInternal, "command %s panicked: %v", name, rec)
		}
	}()

	h, ok := r.handlers[name]
	if !ok {
		return Failure(KindUnknownCommand, "unknown command: %s", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return h(ctx, args)
}
