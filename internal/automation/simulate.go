package automation

import (
	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

// Simulator synthesizes the event sequences a human-driven browser would
// produce. These dispatches are the only way reactive page state observes
// programmatic mutations, so they are never skipped, even when nothing
// appears to change synchronously.
type Simulator struct {
	doc *webview.Document
}

// NewSimulator creates a simulator bound to doc.
func NewSimulator(doc *webview.Document) *Simulator {
	return &Simulator{doc: doc}
}

// SetValue writes the value property directly, bypassing any framework
// setter indirection, then dispatches bubbling input and change events in
// that fixed order.
func (s *Simulator) SetValue(el *webview.Element, value string) {
	el.SetValue(value)
	s.doc.Dispatch(el, &webview.Event{Type: "input", Bubbles: true})
	s.doc.Dispatch(el, &webview.Event{Type: "change", Bubbles: true})
}

// SetChecked issues a genuine click only when the current checked state
// differs from the desired one. Checking an already-checked box is a no-op.
func (s *Simulator) SetChecked(el *webview.Element, checked bool) {
	if el.Checked() == checked {
		return
	}
	el.Click()
}

// Click activates the element, then the caller applies any settle delay.
func (s *Simulator) Click(el *webview.Element) {
	el.Click()
}

// PressKey dispatches keydown then keyup with the same key identifier,
// bubbling, at target.
func (s *Simulator) PressKey(target *webview.Element, key string) {
	s.doc.Dispatch(target, &webview.Event{Type: "keydown", Key: key, Bubbles: true})
	s.doc.Dispatch(target, &webview.Event{Type: "keyup", Key: key, Bubbles: true})
}

// KeyTarget picks the node a key press lands on when no selector was given:
// the focused element, falling back to the document body.
func (s *Simulator) KeyTarget() *webview.Element {
	if el := s.doc.Focused(); el != nil {
		return el
	}
	return s.doc.Body()
}

// Submit dispatches a submit event on the element itself if it is a form,
// otherwise on its nearest ancestor form. Returns false when no form exists
// on the ancestor chain.
func (s *Simulator) Submit(el *webview.Element) (*webview.Element, bool) {
	form, ok := el.Closest("form")
	if !ok {
		return nil, false
	}
	s.doc.Dispatch(form, &webview.Event{Type: "submit", Bubbles: true})
	return form, true
}
