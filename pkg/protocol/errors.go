package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ErrorCode represents standard JSON-RPC 2.0 error codes. The wire form is
// always the JSON integer, never the symbolic name.
type ErrorCode int

// Standard JSON-RPC 2.0 error codes
const (
	ParseError     ErrorCode = -32700
	InvalidRequest ErrorCode = -32600
	MethodNotFound ErrorCode = -32601
	InvalidParams  ErrorCode = -32602
	InternalError  ErrorCode = -32603
)

var errorCodeNames = map[ErrorCode]string{
	ParseError:     "ParseError",
	InvalidRequest: "InvalidRequest",
	MethodNotFound: "MethodNotFound",
	InvalidParams:  "InvalidParams",
	InternalError:  "InternalError",
}

// ErrorCodes returns the fixed set of error codes in ascending order
func ErrorCodes() []ErrorCode {
	return []ErrorCode{ParseError, InvalidRequest, MethodNotFound, InvalidParams, InternalError}
}

// Known reports whether c is one of the five standard codes
func (c ErrorCode) Known() bool {
	_, ok := errorCodeNames[c]
	return ok
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}

// MarshalJSON implements json.Marshaler
func (c ErrorCode) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

// UnmarshalJSON accepts the integer form. Peers that emit the code as a
// quoted integer ("-32700") are tolerated for the five standard codes.
func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	var n int
	if err := json.Unmarshal(trimmed, &n); err == nil && !isNull(trimmed) {
		*c = ErrorCode(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil && ErrorCode(n).Known() {
			*c = ErrorCode(n)
			return nil
		}
	}

	return decodeErr("ErrorCode", "", fmt.Errorf("%w: %s", ErrMalformed, truncate(trimmed)))
}

// Error represents a JSON-RPC 2.0 error object
type Error struct {
	Code    ErrorCode       `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewError creates an error with the given code and message
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorWithData creates an error carrying structured detail
func NewErrorWithData(code ErrorCode, message string, data interface{}) (*Error, error) {
	dataJSON, err := marshalPayload(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal error data: %w", err)
	}
	return &Error{Code: code, Message: message, Data: dataJSON}, nil
}

// NewParseError creates a parse error
func NewParseError(message string) *Error {
	return NewError(ParseError, message)
}

// NewInvalidRequest creates an invalid request error
func NewInvalidRequest(message string) *Error {
	return NewError(InvalidRequest, message)
}

// NewMethodNotFound creates a method not found error for method
func NewMethodNotFound(method string) *Error {
	return NewError(MethodNotFound, "Method not found: "+method)
}

// NewInvalidParams creates an invalid params error
func NewInvalidParams(message string) *Error {
	return NewError(InvalidParams, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *Error {
	return NewError(InternalError, message)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("jsonrpc: code %d, message: %s", e.Code, e.Message)
}

// BindData decodes the structured error detail into v
func (e *Error) BindData(v interface{}) error {
	if len(e.Data) == 0 {
		return decodeErr("Error", "data", ErrMissingField)
	}
	return json.Unmarshal(e.Data, v)
}

// UnmarshalJSON implements json.Unmarshaler
func (e *Error) UnmarshalJSON(data []byte) error {
	type rpcError Error
	var w rpcError
	if err := decodeObject(data, &w, "Error", "code", "message"); err != nil {
		return err
	}
	if isNull(w.Data) {
		w.Data = nil
	}
	*e = Error(w)
	return nil
}
