package automation

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a command failure.
type Kind string

const (
	KindMissingArgument      Kind = "missing_argument"
	KindElementNotFound      Kind = "element_not_found"
	KindWrongElementType     Kind = "wrong_element_type"
	KindUnknownCommand       Kind = "unknown_command"
	KindTransportUnavailable Kind = "transport_unavailable"
	KindCaptureFailed        Kind = "capture_failed"
	KindNoFormFound          Kind = "no_form_found"

	// KindScriptError wraps errors thrown by arbitrary script evaluation.
	KindScriptError Kind = "script_error"
	// KindInternal wraps conditions the taxonomy has no name for, including
	// recovered panics. Callers still get a Result, never a fault.
	KindInternal Kind = "internal"
)

// Fault carries the kind and message of a failed command.
type Fault struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (f *Fault) Error() string {
	return f.Message
}

// Result is the tagged outcome of one command execution: a value on
// success, a fault on failure, never both.
type Result struct {
	Success bool
	Value   any
	Error   *Fault
}

// Success wraps a command's return value.
func Success(value any) *Result {
	return &Result{Success: true, Value: value}
}

// Failure builds a failed result with a formatted message.
func Failure(kind Kind, format string, args ...any) *Result {
	return &Result{
		Success: false,
		Error:   &Fault{Kind: kind, Message: fmt.Sprintf(format, args...)},
	}
}

// MarshalJSON renders the wire shape: {success, result} on success,
// {success, error, kind} on failure.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Result  any  `json:"result"`
		}{true, r.Value})
	}
	var msg string
	var kind Kind
	if r.Error != nil {
		msg = r.Error.Message
		kind = r.Error.Kind
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Kind    Kind   `json:"kind,omitempty"`
	}{false, msg, kind})
}
