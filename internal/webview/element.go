package webview

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element wraps a single node of the document tree. Elements are cheap
// handles; live state lives on the Document so two handles to the same node
// always agree.
type Element struct {
	doc  *Document
	node *html.Node
}

// TagName returns the lowercase tag name.
func (e *Element) TagName() string {
	return strings.ToLower(e.node.Data)
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Attr returns the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	return e.selection().Text()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// HTML serializes the element including its own tag.
func (e *Element) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Value returns the live value property. Falls back to the parsed markup:
// the value attribute for inputs, text content for textareas, the selected
// (or first) option for selects.
func (e *Element) Value() string {
	if v, ok := e.doc.values[e.node]; ok {
		return v
	}
	switch e.TagName() {
	case "textarea":
		return e.Text()
	case "select":
		opts := e.selection().Find("option")
		var value string
		opts.EachWithBreak(func(i int, s *goquery.Selection) bool {
			v := s.AttrOr("value", strings.TrimSpace(s.Text()))
			if i == 0 {
				value = v
			}
			if _, selected := s.Attr("selected"); selected {
				value = v
				return false
			}
			return true
		})
		return value
	default:
		v, _ := e.Attr("value")
		return v
	}
}

// SetValue writes the value property without dispatching any events.
func (e *Element) SetValue(value string) {
	e.doc.values[e.node] = value
}

// Checked returns the live checked property, falling back to the checked
// attribute in markup.
func (e *Element) Checked() bool {
	if v, ok := e.doc.checked[e.node]; ok {
		return v
	}
	_, present := e.Attr("checked")
	return present
}

// SetChecked writes the checked property without dispatching any events.
func (e *Element) SetChecked(checked bool) {
	e.doc.checked[e.node] = checked
}

// IsCheckbox reports whether the element is a checkbox or radio input.
func (e *Element) IsCheckbox() bool {
	if e.TagName() != "input" {
		return false
	}
	t, _ := e.Attr("type")
	return t == "checkbox" || t == "radio"
}

// Click performs the element's activation behavior: checkboxes toggle their
// checked state before handlers run, as in a real browser, then a bubbling
// click event is dispatched.
func (e *Element) Click() {
	toggled := false
	if e.IsCheckbox() {
		e.SetChecked(!e.Checked())
		toggled = true
	}
	e.doc.Dispatch(e, &Event{Type: "click", Bubbles: true})
	if toggled {
		e.doc.Dispatch(e, &Event{Type: "input", Bubbles: true})
		e.doc.Dispatch(e, &Event{Type: "change", Bubbles: true})
	}
}

// Focus moves document focus to the element and fires a focus event.
func (e *Element) Focus() {
	e.doc.mu.Lock()
	e.doc.focused = e.node
	e.doc.mu.Unlock()
	e.doc.Dispatch(e, &Event{Type: "focus"})
}

// Blur removes focus if this element holds it and fires a blur event.
func (e *Element) Blur() {
	e.doc.mu.Lock()
	if e.doc.focused == e.node {
		e.doc.focused = nil
	}
	e.doc.mu.Unlock()
	e.doc.Dispatch(e, &Event{Type: "blur"})
}

// Closest walks the ancestor chain, including the element itself, looking
// for a tag match.
func (e *Element) Closest(tag string) (*Element, bool) {
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
			return &Element{doc: e.doc, node: n}, true
		}
	}
	return nil, false
}

// Same reports whether two handles refer to the same node.
func (e *Element) Same(other *Element) bool {
	return other != nil && e.node == other.node
}

func (e *Element) selection() *goquery.Selection {
	return e.doc.sel.FindNodes(e.node)
}
