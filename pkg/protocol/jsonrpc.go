package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

const (
	// JSONRPCVersion is the supported JSON-RPC version
	JSONRPCVersion = "2.0"

	// ProtocolVersion is the MCP revision these types encode
	ProtocolVersion = "2024-11-05"
)

type idKind uint8

const (
	idNull idKind = iota
	idString
	idInt
)

// RequestID correlates a response with its request. It is exactly one of a
// string, a signed integer or null; the zero value is the null id.
// RequestID values are comparable and may be used as map keys.
type RequestID struct {
	kind idKind
	str  string
	num  int64
}

// StringID returns a string request id
func StringID(s string) RequestID {
	return RequestID{kind: idString, str: s}
}

// IntID returns an integer request id
func IntID(n int64) RequestID {
	return RequestID{kind: idInt, num: n}
}

// NullID returns the null request id
func NullID() RequestID {
	return RequestID{}
}

// NewRandomID returns a string request id holding a random UUID
func NewRandomID() RequestID {
	return StringID(uuid.NewString())
}

// IsString reports whether the id is a string
func (id RequestID) IsString() bool { return id.kind == idString }

// IsInt reports whether the id is an integer
func (id RequestID) IsInt() bool { return id.kind == idInt }

// IsNull reports whether the id is null
func (id RequestID) IsNull() bool { return id.kind == idNull }

// Str returns the string value and whether the id is a string
func (id RequestID) Str() (string, bool) {
	return id.str, id.kind == idString
}

// Int returns the integer value and whether the id is an integer
func (id RequestID) Int() (int64, bool) {
	return id.num, id.kind == idInt
}

// Value returns the id as string, int64 or nil
func (id RequestID) Value() interface{} {
	switch id.kind {
	case idString:
		return id.str
	case idInt:
		return id.num
	default:
		return nil
	}
}

// String renders the id for logs. Integers and null are unquoted.
func (id RequestID) String() string {
	switch id.kind {
	case idString:
		return id.str
	case idInt:
		return strconv.FormatInt(id.num, 10)
	default:
		return "null"
	}
}

// MarshalJSON implements json.Marshaler
func (id RequestID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case idString:
		return json.Marshal(id.str)
	case idInt:
		return []byte(strconv.FormatInt(id.num, 10)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON resolves the id from the JSON value shape: string first,
// then integer, then null. Anything else is rejected.
func (id *RequestID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil && len(trimmed) > 0 && trimmed[0] == '"' {
		*id = StringID(s)
		return nil
	}

	var n int64
	if err := json.Unmarshal(trimmed, &n); err == nil && !isNull(trimmed) {
		*id = IntID(n)
		return nil
	}

	if isNull(trimmed) {
		*id = NullID()
		return nil
	}

	return decodeErr("RequestID", "", fmt.Errorf("%w: %s", ErrInvalidRequestID, truncate(trimmed)))
}

func truncate(b []byte) string {
	const limit = 64
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}

// JSONRPCMessage carries the version marker shared by every envelope
type JSONRPCMessage struct {
	JSONRPC string `json:"jsonrpc"`
}

func checkVersion(obj map[string]json.RawMessage, typ string) error {
	raw, ok := obj["jsonrpc"]
	if !ok {
		return decodeErr(typ, "jsonrpc", ErrMissingField)
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil || v != JSONRPCVersion {
		return decodeErr(typ, "jsonrpc", fmt.Errorf("%w: %s", ErrInvalidVersion, truncate(raw)))
	}
	return nil
}

// Request represents a JSON-RPC 2.0 request
type Request struct {
	JSONRPCMessage
	ID     RequestID       `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// NewRequest creates a new JSON-RPC 2.0 request. A nil params value omits
// the params member entirely.
func NewRequest(id RequestID, method string, params interface{}) (*Request, error) {
	paramsJSON, err := marshalPayload(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	return &Request{
		JSONRPCMessage: JSONRPCMessage{JSONRPC: JSONRPCVersion},
		ID:             id,
		Method:         method,
		Params:         paramsJSON,
	}, nil
}

// BindParams decodes the request params into v
func (r *Request) BindParams(v interface{}) error {
	if len(r.Params) == 0 {
		return decodeErr("Request", "params", ErrMissingField)
	}
	return json.Unmarshal(r.Params, v)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Request) UnmarshalJSON(data []byte) error {
	obj, err := rawObject(data, "Request")
	if err != nil {
		return err
	}
	if err := checkVersion(obj, "Request"); err != nil {
		return err
	}
	if _, ok := obj["id"]; !ok {
		return decodeErr("Request", "id", ErrMissingField)
	}
	if err := requireFields(obj, "Request", "method"); err != nil {
		return err
	}

	type request Request
	var w request
	if err := json.Unmarshal(data, &w); err != nil {
		return wrapMalformed(err, "Request")
	}
	if raw, ok := obj["params"]; ok && isNull(raw) {
		w.Params = nil
	}
	*r = Request(w)
	return nil
}

// Notification represents a JSON-RPC 2.0 notification. It never carries an
// id and never receives a response.
type Notification struct {
	JSONRPCMessage
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// NewNotification creates a new JSON-RPC 2.0 notification
func NewNotification(method string, params interface{}) (*Notification, error) {
	paramsJSON, err := marshalPayload(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	return &Notification{
		JSONRPCMessage: JSONRPCMessage{JSONRPC: JSONRPCVersion},
		Method:         method,
		Params:         paramsJSON,
	}, nil
}

// BindParams decodes the notification params into v
func (n *Notification) BindParams(v interface{}) error {
	if len(n.Params) == 0 {
		return decodeErr("Notification", "params", ErrMissingField)
	}
	return json.Unmarshal(n.Params, v)
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Notification) UnmarshalJSON(data []byte) error {
	obj, err := rawObject(data, "Notification")
	if err != nil {
		return err
	}
	if err := checkVersion(obj, "Notification"); err != nil {
		return err
	}
	if _, ok := obj["id"]; ok {
		return decodeErr("Notification", "id", fmt.Errorf("%w: notifications must not carry an id", ErrMalformed))
	}
	if err := requireFields(obj, "Notification", "method"); err != nil {
		return err
	}

	type notification Notification
	var w notification
	if err := json.Unmarshal(data, &w); err != nil {
		return wrapMalformed(err, "Notification")
	}
	if raw, ok := obj["params"]; ok && isNull(raw) {
		w.Params = nil
	}
	*n = Notification(w)
	return nil
}

// Response represents a JSON-RPC 2.0 response. Exactly one of Result and
// Error is set; build responses with NewResponse or NewErrorResponse.
type Response struct {
	JSONRPCMessage
	ID     RequestID       `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// NewResponse creates a new JSON-RPC 2.0 success response. A nil result is
// encoded as JSON null so the result member is always present.
func NewResponse(id RequestID, result interface{}) (*Response, error) {
	resultJSON, err := marshalPayload(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	if len(resultJSON) == 0 {
		resultJSON = json.RawMessage("null")
	}

	return &Response{
		JSONRPCMessage: JSONRPCMessage{JSONRPC: JSONRPCVersion},
		ID:             id,
		Result:         resultJSON,
	}, nil
}

// NewErrorResponse creates a new JSON-RPC 2.0 error response
func NewErrorResponse(id RequestID, rpcErr *Error) *Response {
	if rpcErr == nil {
		rpcErr = NewInternalError("missing error")
	}
	return &Response{
		JSONRPCMessage: JSONRPCMessage{JSONRPC: JSONRPCVersion},
		ID:             id,
		Error:          rpcErr,
	}
}

// IsError reports whether the response carries an error
func (r *Response) IsError() bool {
	return r.Error != nil
}

// Validate checks the result/error exclusivity invariant
func (r *Response) Validate() error {
	hasResult := len(r.Result) > 0
	hasError := r.Error != nil
	if hasResult == hasError {
		return decodeErr("Response", "", ErrResponseExclusivity)
	}
	return nil
}

// BindResult decodes a success result into v. It returns the response error
// when the response is an error response.
func (r *Response) BindResult(v interface{}) error {
	if r.Error != nil {
		return r.Error
	}
	if len(r.Result) == 0 {
		return decodeErr("Response", "result", ErrMissingField)
	}
	return json.Unmarshal(r.Result, v)
}

// MarshalJSON implements json.Marshaler and refuses responses that break
// result/error exclusivity.
func (r Response) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	version := r.JSONRPC
	if version == "" {
		version = JSONRPCVersion
	}
	type response Response
	w := response(r)
	w.JSONRPC = version
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. A present "error" key counts as
// present even when its value is null, so {"result":{},"error":null} is
// rejected.
func (r *Response) UnmarshalJSON(data []byte) error {
	obj, err := rawObject(data, "Response")
	if err != nil {
		return err
	}
	if err := checkVersion(obj, "Response"); err != nil {
		return err
	}
	if _, ok := obj["id"]; !ok {
		return decodeErr("Response", "id", ErrMissingField)
	}

	rawResult, hasResult := obj["result"]
	rawError, hasError := obj["error"]
	if hasResult == hasError {
		return decodeErr("Response", "", ErrResponseExclusivity)
	}
	if hasError && isNull(rawError) {
		return decodeErr("Response", "error", ErrMissingField)
	}

	var w struct {
		ID    RequestID `json:"id"`
		Error *Error    `json:"error"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return wrapMalformed(err, "Response")
	}

	*r = Response{
		JSONRPCMessage: JSONRPCMessage{JSONRPC: JSONRPCVersion},
		ID:             w.ID,
		Error:          w.Error,
	}
	if hasResult {
		r.Result = append(json.RawMessage(nil), bytes.TrimSpace(rawResult)...)
	}
	return nil
}
