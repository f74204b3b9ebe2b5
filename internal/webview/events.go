package webview

import "golang.org/x/net/html"

// Event is a synthetic DOM event.
type Event struct {
	Type    string
	Target  *Element
	Key     string
	Bubbles bool

	stopped bool
}

// StopPropagation prevents the event from reaching ancestor listeners.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// Listener receives dispatched events.
type Listener func(*Event)

// On registers a listener for events of the given type on this element.
func (e *Element) On(eventType string, fn Listener) {
	byType := e.doc.listeners[e.node]
	if byType == nil {
		byType = make(map[string][]Listener)
		e.doc.listeners[e.node] = byType
	}
	byType[eventType] = append(byType[eventType], fn)
}

// Dispatch delivers ev to listeners on target, then, for bubbling events,
// to each ancestor in turn until the root or a StopPropagation call.
func (d *Document) Dispatch(target *Element, ev *Event) {
	if target == nil {
		return
	}
	ev.Target = target
	for n := target.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode && n.Type != html.DocumentNode {
			continue
		}
		for _, fn := range d.listeners[n][ev.Type] {
			fn(ev)
			if ev.stopped {
				return
			}
		}
		if !ev.Bubbles {
			return
		}
	}
}
