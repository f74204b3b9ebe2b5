package webview

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// BlankPage is the document loaded when no page is registered for a path.
const BlankPage = `<!DOCTYPE html><html><head><title></title></head><body></body></html>`

// Document is a headless DOM the automation service executes against.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	sel      *goquery.Document
	location string
	pages    map[string]string

	// Live property overlays, distinct from parsed attributes.
	values  map[*html.Node]string
	checked map[*html.Node]bool

	listeners map[*html.Node]map[string][]Listener
	focused   *html.Node
	scrolled  *html.Node

	host *Host
	log  *zap.Logger
}

// NewDocument parses src as the initial page.
func NewDocument(src string, logger *zap.Logger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Document{
		pages: make(map[string]string),
		host:  NewHost(),
		log:   logger,
	}
	if src == "" {
		src = BlankPage
	}
	if err := d.load(src, "/"); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) load(src, location string) error {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}
	d.root = root
	d.sel = goquery.NewDocumentFromNode(root)
	d.location = location
	d.values = make(map[*html.Node]string)
	d.checked = make(map[*html.Node]bool)
	d.listeners = make(map[*html.Node]map[string][]Listener)
	d.focused = nil
	d.scrolled = nil
	return nil
}

// RegisterPage adds a page to the route table used by Navigate.
func (d *Document) RegisterPage(path, src string) {
	d.mu.Lock()
	d.pages[path] = src
	d.mu.Unlock()
}

// Navigate swaps in the page registered for path, or a blank page when none
// is registered, then fires a load event. All listeners, focus and property
// overlays from the previous page are dropped.
func (d *Document) Navigate(path string) error {
	d.mu.Lock()
	src, ok := d.pages[path]
	d.mu.Unlock()
	if !ok {
		src = BlankPage
	}
	if err := d.load(src, path); err != nil {
		return err
	}
	d.log.Debug("navigated", zap.String("path", path))
	d.Dispatch(d.DocumentElement(), &Event{Type: "load"})
	return nil
}

// Location returns the current path.
func (d *Document) Location() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.location
}

// Title returns the text of the title element, empty if absent.
func (d *Document) Title() string {
	return strings.TrimSpace(d.sel.Find("title").First().Text())
}

// SetTitle replaces the title element text.
func (d *Document) SetTitle(title string) {
	if el, ok := d.QueryOne("title"); ok {
		el.SetText(title)
	}
}

// Query returns all elements matching the CSS selector, in document order.
func (d *Document) Query(selector string) []*Element {
	var out []*Element
	d.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{doc: d, node: s.Nodes[0]})
	})
	return out
}

// QueryOne returns the first element matching the selector.
func (d *Document) QueryOne(selector string) (*Element, bool) {
	s := d.sel.Find(selector).First()
	if s.Length() == 0 {
		return nil, false
	}
	return &Element{doc: d, node: s.Nodes[0]}, true
}

// DocumentElement returns the html root element.
func (d *Document) DocumentElement() *Element {
	el, _ := d.QueryOne("html")
	return el
}

// Body returns the body element.
func (d *Document) Body() *Element {
	el, _ := d.QueryOne("body")
	return el
}

// Focused returns the currently focused element, nil when nothing holds focus.
func (d *Document) Focused() *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.focused == nil {
		return nil
	}
	return &Element{doc: d, node: d.focused}
}

// ScrollTo records el as the scroll target and fires a scroll event.
func (d *Document) ScrollTo(el *Element) {
	d.mu.Lock()
	d.scrolled = el.node
	d.mu.Unlock()
	d.Dispatch(d.DocumentElement(), &Event{Type: "scroll"})
}

// ScrollTarget returns the element most recently scrolled into view.
func (d *Document) ScrollTarget() *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scrolled == nil {
		return nil
	}
	return &Element{doc: d, node: d.scrolled}
}

// HTML serializes the full document.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}
	return buf.String(), nil
}

// Host returns the host binding surface for this document.
func (d *Document) Host() *Host {
	return d.host
}
