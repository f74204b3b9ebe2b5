package webview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/net/html"
)

// Default viewport used when the caller does not specify one.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

const (
	boxLineHeight = 18
	boxPadding    = 6
	boxIndent     = 10
)

var (
	pageBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	boxBorder      = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	boxFill        = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	inputFill      = color.RGBA{R: 0xdc, G: 0xe8, B: 0xf8, A: 0xff}
	textFill       = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
)

// Render rasterizes the current document into a PNG. The output is a
// deterministic block-layout wireframe: every visible element becomes a
// bordered box stacked vertically, nested boxes indented, form controls
// tinted. Content-dependent, so two different pages produce two different
// images, which is what the capture flow needs.
func (d *Document) Render(width, height int) ([]byte, error) {
	if width <= 0 {
		width = DefaultViewportWidth
	}
	if height <= 0 {
		height = DefaultViewportHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: pageBackground}, image.Point{}, draw.Src)

	body := d.Body()
	if body != nil {
		y := boxPadding
		for c := body.node.FirstChild; c != nil; c = c.NextSibling {
			y = d.renderNode(img, c, boxPadding, y, width-2*boxPadding)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page image: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) renderNode(img *image.RGBA, n *html.Node, x, y, width int) int {
	if y >= img.Bounds().Dy() {
		return y
	}
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return y
		}
		fillRect(img, x+boxPadding, y+boxLineHeight/2-2, textWidth(n.Data, width), 4, textFill)
		return y + boxLineHeight
	case html.ElementNode:
		if skipRender(n.Data) {
			return y
		}
		top := y
		inner := y + boxPadding
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			inner = d.renderNode(img, c, x+boxIndent, inner, width-2*boxIndent)
		}
		bottom := inner + boxPadding
		if bottom-top < boxLineHeight {
			bottom = top + boxLineHeight
		}
		fill := boxFill
		if isFormControl(n.Data) {
			fill = inputFill
		}
		fillRect(img, x, top, width, bottom-top, fill)
		strokeRect(img, x, top, width, bottom-top, boxBorder)
		// Redraw children over the box fill.
		inner = top + boxPadding
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			inner = d.renderNode(img, c, x+boxIndent, inner, width-2*boxIndent)
		}
		return bottom + 2
	default:
		return y
	}
}

func skipRender(tag string) bool {
	switch strings.ToLower(tag) {
	case "script", "style", "head", "meta", "link", "title", "template":
		return true
	}
	return false
}

func isFormControl(tag string) bool {
	switch strings.ToLower(tag) {
	case "input", "textarea", "select", "button":
		return true
	}
	return false
}

func textWidth(text string, max int) int {
	w := 7 * len(strings.TrimSpace(text))
	if w > max-2*boxPadding {
		w = max - 2*boxPadding
	}
	if w < 4 {
		w = 4
	}
	return w
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(img.Bounds())
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, x, y, w, h int, c color.Color) {
	fillRect(img, x, y, w, 1, c)
	fillRect(img, x, y+h-1, w, 1, c)
	fillRect(img, x, y, 1, h, c)
	fillRect(img, x+w-1, y, 1, h, c)
}
