package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dcherrera/tauri-plugin-automation/internal/webview"
)

// Message is a decoded screenshot delivery as the host side sees it.
type Message struct {
	Token string
	PNG   []byte
}

// Mailbox is the host-side receiver for screenshot deliveries. At most one
// capture is in flight at a time, so a single slot suffices; a newer
// delivery replaces an unconsumed older one. Callers hold their triggering
// request open with Await and treat a timeout as a capture failure, never
// assuming delivery arrives synchronously with the trigger.
type Mailbox struct {
	slot chan Message
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{slot: make(chan Message, 1)}
}

// HostFunc returns the binding the host runtime installs on the webview
// host surface. It accepts only DeliverCommand and rejects any payload it
// cannot fully decode, so the slot never holds a partial or corrupt image.
func (m *Mailbox) HostFunc() webview.HostFunc {
	return func(ctx context.Context, command string, payload any) (any, error) {
		if command != DeliverCommand {
			return nil, fmt.Errorf("unhandled host command: %s", command)
		}
		msg, err := decode(payload)
		if err != nil {
			return nil, err
		}
		m.put(msg)
		return nil, nil
	}
}

func (m *Mailbox) put(msg Message) {
	select {
	case m.slot <- msg:
	default:
		// Drop the stale unconsumed delivery.
		select {
		case <-m.slot:
		default:
		}
		m.slot <- msg
	}
}

// Await blocks until a delivery arrives or ctx expires.
func (m *Mailbox) Await(ctx context.Context) (Message, error) {
	select {
	case msg := <-m.slot:
		return msg, nil
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

// TryTake drains the slot without blocking, for hosts that poll a
// last-known-payload instead of holding the request open.
func (m *Mailbox) TryTake() (Message, bool) {
	select {
	case msg := <-m.slot:
		return msg, true
	default:
		return Message{}, false
	}
}

func decode(payload any) (Message, error) {
	fields, ok := payload.(map[string]any)
	if !ok {
		return Message{}, fmt.Errorf("screenshot payload must be an object, got %T", payload)
	}
	token, _ := fields["token"].(string)
	if token == "" {
		return Message{}, fmt.Errorf("screenshot payload missing correlation token")
	}
	data, _ := fields["data"].(string)
	encoded, ok := strings.CutPrefix(data, pngPrefix)
	if !ok {
		return Message{}, fmt.Errorf("screenshot payload is not a png data url")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Message{}, fmt.Errorf("decode screenshot payload: %w", err)
	}
	return Message{Token: token, PNG: raw}, nil
}
