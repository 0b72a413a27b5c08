package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Decode failure sentinels. Every error returned while turning bytes into
// protocol values wraps one of these in a *DecodeError.
var (
	// ErrMalformed indicates the input is not valid JSON or has the wrong
	// shape. Syntax failures keep the *json.SyntaxError in the chain.
	ErrMalformed = errors.New("malformed message")

	// ErrMissingField indicates a required field is absent or null
	ErrMissingField = errors.New("missing required field")

	// ErrMissingContentType indicates a content union without a "type" tag
	ErrMissingContentType = errors.New("missing content type")

	// ErrUnknownContentType indicates a "type" tag the union does not accept
	ErrUnknownContentType = errors.New("unknown content type")

	// ErrInvalidRequestID indicates an id that is not a string, integer or null
	ErrInvalidRequestID = errors.New("invalid request id")

	// ErrInvalidVersion indicates a jsonrpc marker other than "2.0"
	ErrInvalidVersion = errors.New("invalid jsonrpc version")

	// ErrInvalidEnum indicates a value outside a closed enumeration (role, level)
	ErrInvalidEnum = errors.New("invalid enumeration value")

	// ErrResponseExclusivity indicates a response with both or neither of result and error
	ErrResponseExclusivity = errors.New("response must carry exactly one of result or error")
)

// DecodeError describes why a JSON document could not be decoded into a
// protocol type.
type DecodeError struct {
	// Type is the protocol type being decoded
	Type string
	// Field is the offending wire key, if any
	Field string
	// Err is the underlying sentinel, possibly wrapping a json error
	Err error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %s: field %q: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(typ, field string, err error) error {
	return &DecodeError{Type: typ, Field: field, Err: err}
}

// rawObject splits a JSON object into its raw members.
func rawObject(data []byte, typ string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, decodeErr(typ, "", fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	if obj == nil {
		return nil, decodeErr(typ, "", fmt.Errorf("%w: expected object, got null", ErrMalformed))
	}
	return obj, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// requireFields reports the first required key that is absent or null.
func requireFields(obj map[string]json.RawMessage, typ string, fields ...string) error {
	for _, f := range fields {
		raw, ok := obj[f]
		if !ok || isNull(raw) {
			return decodeErr(typ, f, ErrMissingField)
		}
	}
	return nil
}

// decodeObject decodes data into v after checking it is a JSON object that
// carries every required key. v is normally a pointer to a local alias of the
// target type so the caller's UnmarshalJSON is not re-entered.
func decodeObject(data []byte, v interface{}, typ string, required ...string) error {
	obj, err := rawObject(data, typ)
	if err != nil {
		return err
	}
	if err := requireFields(obj, typ, required...); err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return wrapMalformed(err, typ)
	}
	return nil
}

// wrapMalformed passes nested decode errors through untouched and tags
// anything else as malformed input.
func wrapMalformed(err error, typ string) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return decodeErr(typ, "", fmt.Errorf("%w: %w", ErrMalformed, err))
}

// marshalPayload encodes an untyped payload. A nil value yields a nil
// RawMessage so the owning field is omitted.
func marshalPayload(v interface{}) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(v)
}
