package errors

import (
	"fmt"

	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// ResourceErrorData contains structured data for resource-related errors
type ResourceErrorData struct {
	URI    string `json:"uri"`
	Reason string `json:"reason,omitempty"`
}

// VersionErrorData lists the protocol versions a peer supports
type VersionErrorData struct {
	Supported []string `json:"supported"`
	Requested string   `json:"requested"`
}

// LimitErrorData describes an exceeded size or count limit
type LimitErrorData struct {
	Limit  int64  `json:"limit"`
	Actual int64  `json:"actual"`
	Unit   string `json:"unit"`
}

// MethodNotFound creates the error for an unknown method
func MethodNotFound(method string) MCPError {
	return NewError(
		CodeMethodNotFound,
		"Method not found: "+method,
		CategoryProtocol,
		SeverityError,
	).WithContext(&Context{Method: method})
}

// ToolNotFound creates the error returned by tools/call for an unknown tool.
// Unknown tool names are invalid params, not unknown methods.
func ToolNotFound(name string) MCPError {
	return NewError(
		CodeInvalidParams,
		fmt.Sprintf("Unknown tool: %s", name),
		CategoryNotFound,
		SeverityError,
	).WithContext(&Context{Method: protocol.MethodCallTool})
}

// PromptNotFound creates the error returned by prompts/get for an unknown prompt
func PromptNotFound(name string) MCPError {
	return NewError(
		CodeInvalidParams,
		fmt.Sprintf("Unknown prompt: %s", name),
		CategoryNotFound,
		SeverityError,
	).WithContext(&Context{Method: protocol.MethodGetPrompt})
}

// ResourceNotFound creates an error for a URI that cannot be resolved
func ResourceNotFound(uri string) MCPError {
	return NewError(
		CodeResourceNotFound,
		fmt.Sprintf("Resource not found: %s", uri),
		CategoryNotFound,
		SeverityError,
	).WithData(&ResourceErrorData{URI: uri})
}

// UnsupportedProtocolVersion creates the initialize error for a version the
// server cannot speak
func UnsupportedProtocolVersion(requested string, supported ...string) MCPError {
	if len(supported) == 0 {
		supported = []string{protocol.ProtocolVersion}
	}
	return NewError(
		CodeInvalidParams,
		"Unsupported protocol version",
		CategoryProtocol,
		SeverityError,
	).WithData(&VersionErrorData{
		Supported: supported,
		Requested: requested,
	}).WithContext(&Context{Method: protocol.MethodInitialize})
}

// CapabilityNotSupported creates an error for a method whose capability was
// not declared during initialization
func CapabilityNotSupported(capability, method string) MCPError {
	return NewError(
		CodeMethodNotFound,
		fmt.Sprintf("Capability %q not supported", capability),
		CategoryProtocol,
		SeverityError,
	).WithContext(&Context{Method: method})
}

// RequestCancelled creates an error for a request the peer cancelled
func RequestCancelled(id protocol.RequestID, reason string) MCPError {
	err := NewError(
		CodeRequestCancelled,
		"Request cancelled",
		CategoryCancelled,
		SeverityInfo,
	).WithContext(&Context{RequestID: id.String()})
	if reason != "" {
		err = err.WithDetail(reason)
	}
	return err
}

// RequestTimeout creates an error for a request whose deadline passed
func RequestTimeout(id protocol.RequestID, operation string) MCPError {
	return NewError(
		CodeRequestTimeout,
		fmt.Sprintf("Request timed out during %s", operation),
		CategoryTimeout,
		SeverityError,
	).WithContext(&Context{RequestID: id.String(), Operation: operation})
}

// MessageTooLarge creates an error for a message over the byte limit
func MessageTooLarge(size, limit int64) MCPError {
	return NewError(
		CodeMessageTooLarge,
		fmt.Sprintf("Message size %d exceeds limit of %d bytes", size, limit),
		CategoryValidation,
		SeverityWarning,
	).WithData(&LimitErrorData{Limit: limit, Actual: size, Unit: "bytes"})
}

// BatchTooLarge creates an error for a batch with too many elements
func BatchTooLarge(count, limit int) MCPError {
	return NewError(
		CodeMessageTooLarge,
		fmt.Sprintf("Batch of %d messages exceeds limit of %d", count, limit),
		CategoryValidation,
		SeverityWarning,
	).WithData(&LimitErrorData{Limit: int64(limit), Actual: int64(count), Unit: "messages"})
}
