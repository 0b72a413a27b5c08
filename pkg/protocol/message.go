package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MessageKind classifies a decoded JSON-RPC message
type MessageKind int

// Message kinds
const (
	KindRequest MessageKind = iota + 1
	KindNotification
	KindResponse
)

// String returns the lowercase kind name
func (k MessageKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNotification:
		return "notification"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Message is a decoded *Request, *Notification or *Response
type Message interface {
	Kind() MessageKind
}

// Kind returns KindRequest
func (r *Request) Kind() MessageKind { return KindRequest }

// Kind returns KindNotification
func (n *Notification) Kind() MessageKind { return KindNotification }

// Kind returns KindResponse
func (r *Response) Kind() MessageKind { return KindResponse }

// classify decides the message kind from key presence alone. A method
// makes it a request or notification depending on the id key. Without a
// method it must be a response, which needs an id and one payload.
func classify(obj map[string]json.RawMessage) (MessageKind, error) {
	_, hasMethod := obj["method"]
	_, hasID := obj["id"]
	_, hasResult := obj["result"]
	_, hasError := obj["error"]

	switch {
	case hasMethod && hasID:
		return KindRequest, nil
	case hasMethod:
		return KindNotification, nil
	case hasID && (hasResult || hasError):
		return KindResponse, nil
	case hasResult || hasError:
		return 0, decodeErr("Response", "id", ErrMissingField)
	case hasID:
		return 0, decodeErr("Response", "", ErrResponseExclusivity)
	default:
		return 0, decodeErr("Message", "method", ErrMissingField)
	}
}

// ParseMessage decodes a single JSON-RPC message and returns it as a
// *Request, *Notification or *Response. Batches are rejected; use
// ParseBatch for those.
func ParseMessage(data []byte) (Message, error) {
	if IsBatch(data) && json.Valid(data) {
		return nil, decodeErr("Message", "", fmt.Errorf("%w: unexpected batch", ErrMalformed))
	}
	obj, err := rawObject(data, "Message")
	if err != nil {
		return nil, err
	}
	kind, err := classify(obj)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindRequest:
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, wrapMalformed(err, "Request")
		}
		return &req, nil
	case KindNotification:
		var n Notification
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, wrapMalformed(err, "Notification")
		}
		return &n, nil
	default:
		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, wrapMalformed(err, "Response")
		}
		return &resp, nil
	}
}

// SplitBatch splits a JSON-RPC batch into its raw elements. A single object
// is returned as a batch of one. Empty batches are malformed.
func SplitBatch(data []byte) ([]json.RawMessage, error) {
	if !IsBatch(data) {
		if _, err := rawObject(data, "Batch"); err != nil {
			return nil, err
		}
		return []json.RawMessage{bytes.TrimSpace(data)}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, decodeErr("Batch", "", fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	if len(items) == 0 {
		return nil, decodeErr("Batch", "", fmt.Errorf("%w: empty batch", ErrMalformed))
	}
	return items, nil
}

// ParseBatch decodes a JSON-RPC batch in order. The first element that
// fails to decode aborts the batch.
func ParseBatch(data []byte) ([]Message, error) {
	items, err := SplitBatch(data)
	if err != nil {
		return nil, err
	}
	msgs := make([]Message, 0, len(items))
	for i, item := range items {
		msg, err := ParseMessage(item)
		if err != nil {
			return nil, fmt.Errorf("batch element %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func peek(data []byte) (MessageKind, bool) {
	obj, err := rawObject(data, "Message")
	if err != nil {
		return 0, false
	}
	if checkVersion(obj, "Message") != nil {
		return 0, false
	}
	kind, err := classify(obj)
	if err != nil {
		return 0, false
	}
	return kind, true
}

// IsRequest checks if the message is a request
func IsRequest(data []byte) bool {
	kind, ok := peek(data)
	return ok && kind == KindRequest
}

// IsResponse checks if the message is a response
func IsResponse(data []byte) bool {
	kind, ok := peek(data)
	return ok && kind == KindResponse
}

// IsNotification checks if the message is a notification
func IsNotification(data []byte) bool {
	kind, ok := peek(data)
	return ok && kind == KindNotification
}

// IsBatch checks if the data is a JSON array
func IsBatch(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// CancelledParams defines parameters for the notifications/cancelled notification
type CancelledParams struct {
	RequestID RequestID `json:"requestId"`
	Reason    string    `json:"reason,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *CancelledParams) UnmarshalJSON(data []byte) error {
	type params CancelledParams
	var w params
	if err := decodeObject(data, &w, "CancelledParams", "requestId"); err != nil {
		return err
	}
	*p = CancelledParams(w)
	return nil
}
