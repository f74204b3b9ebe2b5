// Package capture implements the two-phase screenshot flow: rasterize the
// document inside the execution context, then deliver the payload to the
// host side through the capability bridge, keyed by a correlation token so
// an external caller's request can be matched to the eventual delivery.
package capture

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dcherrera/tauri-plugin-automation/internal/transport"
	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

// DeliverCommand is the fixed host command screenshot payloads travel under,
// out-of-band from whatever request triggered the capture.
const DeliverCommand = "deliver_screenshot"

const pngPrefix = "data:image/png;base64,"

// DeliveryState tracks one capture's lifecycle. Deliveries are transient:
// created when capture begins, resolved exactly once, never resurrected.
type DeliveryState string

const (
	StatePending   DeliveryState = "pending"
	StateDelivered DeliveryState = "delivered"
	StateFailed    DeliveryState = "failed"
)

// Delivery is the outcome of one capture-and-send.
type Delivery struct {
	Token string
	State DeliveryState
	Err   error
}

// Channel coordinates capture and delivery for one document.
type Channel struct {
	doc    *webview.Document
	handle transport.Handle
	width  int
	height int
	log    *zap.Logger
}

// NewChannel creates a capture channel rendering at the given viewport.
func NewChannel(doc *webview.Document, handle transport.Handle, width, height int, logger *zap.Logger) *Channel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{doc: doc, handle: handle, width: width, height: height, log: logger}
}

// CaptureAndSend rasterizes the current document and hands the encoded
// payload to the host transport. Delivery is all-or-nothing: any error at
// either phase resolves the delivery as Failed, and a partial or corrupt
// payload is never handed off.
func (c *Channel) CaptureAndSend(ctx context.Context) *Delivery {
	d := &Delivery{Token: uuid.NewString(), State: StatePending}

	png, err := c.doc.Render(c.width, c.height)
	if err != nil {
		c.log.Error("capture render failed", zap.String("token", d.Token), zap.Error(err))
		d.State = StateFailed
		d.Err = err
		return d
	}

	payload := map[string]any{
		"token": d.Token,
		"data":  pngPrefix + base64.StdEncoding.EncodeToString(png),
	}
	if _, err := c.handle.Invoke(ctx, DeliverCommand, payload); err != nil {
		c.log.Error("capture delivery failed", zap.String("token", d.Token), zap.Error(err))
		d.State = StateFailed
		d.Err = err
		return d
	}

	c.log.Debug("screenshot delivered",
		zap.String("token", d.Token),
		zap.Int("bytes", len(png)))
	d.State = StateDelivered
	return d
}
