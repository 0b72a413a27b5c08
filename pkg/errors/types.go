// Package errors provides structured errors for code that produces and
// consumes MCP messages. Every MCPError carries a JSON-RPC error code plus a
// category and severity for programmatic handling, and converts losslessly
// to and from the protocol.Error object that travels on the wire.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// Category represents the type/category of an error for classification and handling
type Category string

const (
	CategoryProtocol   Category = "protocol"
	CategoryValidation Category = "validation"
	CategoryNotFound   Category = "not_found"
	CategoryInternal   Category = "internal"
	CategoryTimeout    Category = "timeout"
	CategoryCancelled  Category = "cancelled"
)

// Severity indicates how critical an error is
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Context describes where an error occurred
type Context struct {
	RequestID string    `json:"request_id,omitempty"`
	Method    string    `json:"method,omitempty"`
	Type      string    `json:"type,omitempty"`
	Field     string    `json:"field,omitempty"`
	Component string    `json:"component,omitempty"`
	Operation string    `json:"operation,omitempty"`
	TraceID   string    `json:"trace_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MCPError defines the interface for all structured errors in this module
type MCPError interface {
	error

	// Code returns the JSON-RPC error code
	Code() protocol.ErrorCode

	// Message returns a human-readable error message
	Message() string

	// Details returns detailed technical description for debugging
	Details() string

	// Data returns structured error data for programmatic handling
	Data() interface{}

	// Category returns the error category for classification
	Category() Category

	// Severity returns the error severity level
	Severity() Severity

	// Context returns the error context information
	Context() *Context

	// WithContext returns a new error with the provided context
	WithContext(ctx *Context) MCPError

	// WithDetail returns a new error with additional detail
	WithDetail(detail string) MCPError

	// WithData returns a new error with structured data
	WithData(data interface{}) MCPError

	// Unwrap returns the underlying error for error chain traversal
	Unwrap() error

	// ToJSON returns the error as a JSON-serializable map
	ToJSON() map[string]interface{}
}

type baseError struct {
	code     protocol.ErrorCode
	message  string
	details  string
	data     interface{}
	category Category
	severity Severity
	context  *Context
	cause    error
}

// Error implements the error interface
func (e *baseError) Error() string {
	if e.details != "" {
		return fmt.Sprintf("%s: %s", e.message, e.details)
	}
	return e.message
}

func (e *baseError) Code() protocol.ErrorCode { return e.code }
func (e *baseError) Message() string          { return e.message }
func (e *baseError) Details() string          { return e.details }
func (e *baseError) Data() interface{}        { return e.data }
func (e *baseError) Category() Category       { return e.category }
func (e *baseError) Severity() Severity       { return e.severity }
func (e *baseError) Context() *Context        { return e.context }
func (e *baseError) Unwrap() error            { return e.cause }

// WithContext returns a copy of the error with ctx attached. A zero
// timestamp is filled from the existing context.
func (e *baseError) WithContext(ctx *Context) MCPError {
	newErr := *e
	if ctx != nil && ctx.Timestamp.IsZero() && e.context != nil {
		merged := *ctx
		merged.Timestamp = e.context.Timestamp
		ctx = &merged
	}
	newErr.context = ctx
	return &newErr
}

// WithDetail returns a copy of the error with detail appended
func (e *baseError) WithDetail(detail string) MCPError {
	newErr := *e
	if newErr.details != "" {
		newErr.details = fmt.Sprintf("%s; %s", newErr.details, detail)
	} else {
		newErr.details = detail
	}
	return &newErr
}

// WithData returns a copy of the error carrying data
func (e *baseError) WithData(data interface{}) MCPError {
	newErr := *e
	newErr.data = data
	return &newErr
}

// ToJSON returns the error as a JSON-serializable map
func (e *baseError) ToJSON() map[string]interface{} {
	result := map[string]interface{}{
		"code":     int(e.code),
		"message":  e.message,
		"category": string(e.category),
		"severity": string(e.severity),
	}

	if e.details != "" {
		result["details"] = e.details
	}
	if e.data != nil {
		result["data"] = e.data
	}
	if e.context != nil {
		result["context"] = e.context
	}
	if e.cause != nil {
		result["cause"] = e.cause.Error()
	}

	return result
}

// MarshalJSON implements json.Marshaler
func (e *baseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToJSON())
}

// NewError creates a new MCPError with the specified parameters
func NewError(code protocol.ErrorCode, message string, category Category, severity Severity) MCPError {
	return &baseError{
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		context:  &Context{Timestamp: time.Now()},
	}
}

// NewErrorf creates a new MCPError with formatted message
func NewErrorf(code protocol.ErrorCode, category Category, severity Severity, format string, args ...interface{}) MCPError {
	return NewError(code, fmt.Sprintf(format, args...), category, severity)
}

// WrapError wraps an existing error as an MCPError
func WrapError(err error, code protocol.ErrorCode, message string, category Category, severity Severity) MCPError {
	return &baseError{
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		cause:    err,
		context:  &Context{Timestamp: time.Now()},
	}
}

// WrapErrorf wraps an existing error as an MCPError with formatted message
func WrapErrorf(err error, code protocol.ErrorCode, category Category, severity Severity, format string, args ...interface{}) MCPError {
	return WrapError(err, code, fmt.Sprintf(format, args...), category, severity)
}

// AsMCPError finds the first MCPError in err's chain
func AsMCPError(err error) (MCPError, bool) {
	if err == nil {
		return nil, false
	}

	var mcpErr MCPError
	if stderrors.As(err, &mcpErr) {
		return mcpErr, true
	}
	return nil, false
}

// IsMCPError checks if an error is an MCPError
func IsMCPError(err error) bool {
	_, ok := AsMCPError(err)
	return ok
}

// IsCategory checks if an error is of a specific category
func IsCategory(err error, category Category) bool {
	if mcpErr, ok := AsMCPError(err); ok {
		return mcpErr.Category() == category
	}
	return false
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code protocol.ErrorCode) bool {
	if mcpErr, ok := AsMCPError(err); ok {
		return mcpErr.Code() == code
	}
	return false
}
