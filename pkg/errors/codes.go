package errors

import "github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"

// JSON-RPC 2.0 standard error codes, re-declared here so callers of this
// package need not import protocol for the common case.
const (
	// CodeParseError indicates invalid JSON was received
	CodeParseError = protocol.ParseError

	// CodeInvalidRequest indicates the JSON sent is not a valid request object
	CodeInvalidRequest = protocol.InvalidRequest

	// CodeMethodNotFound indicates the method does not exist or is not available
	CodeMethodNotFound = protocol.MethodNotFound

	// CodeInvalidParams indicates invalid method parameters
	CodeInvalidParams = protocol.InvalidParams

	// CodeInternalError indicates an internal JSON-RPC error
	CodeInternalError = protocol.InternalError
)

// Implementation-defined server error codes (-32000 to -32099) and the
// cancellation codes shared with LSP-style peers.
const (
	CodeServerError      protocol.ErrorCode = -32000 // Generic server error
	CodeMessageTooLarge  protocol.ErrorCode = -32001 // Message or batch exceeds configured limits
	CodeResourceNotFound protocol.ErrorCode = -32002 // Resource URI could not be resolved
	CodeRequestCancelled protocol.ErrorCode = -32800 // Request cancelled by the peer
	CodeRequestTimeout   protocol.ErrorCode = -32801 // Request deadline exceeded
)

// ErrorCodeInfo provides human-readable information about error codes
type ErrorCodeInfo struct {
	Code        protocol.ErrorCode
	Name        string
	Description string
	Category    Category
	Severity    Severity
}

var errorCodeRegistry = map[protocol.ErrorCode]ErrorCodeInfo{
	CodeParseError:     {CodeParseError, "ParseError", "Invalid JSON was received", CategoryProtocol, SeverityError},
	CodeInvalidRequest: {CodeInvalidRequest, "InvalidRequest", "Invalid Request object", CategoryProtocol, SeverityError},
	CodeMethodNotFound: {CodeMethodNotFound, "MethodNotFound", "Method does not exist", CategoryProtocol, SeverityError},
	CodeInvalidParams:  {CodeInvalidParams, "InvalidParams", "Invalid method parameters", CategoryValidation, SeverityError},
	CodeInternalError:  {CodeInternalError, "InternalError", "Internal JSON-RPC error", CategoryInternal, SeverityError},

	CodeServerError:      {CodeServerError, "ServerError", "Server error", CategoryInternal, SeverityError},
	CodeMessageTooLarge:  {CodeMessageTooLarge, "MessageTooLarge", "Message exceeds size limits", CategoryValidation, SeverityWarning},
	CodeResourceNotFound: {CodeResourceNotFound, "ResourceNotFound", "Resource not found", CategoryNotFound, SeverityError},
	CodeRequestCancelled: {CodeRequestCancelled, "RequestCancelled", "Request cancelled", CategoryCancelled, SeverityInfo},
	CodeRequestTimeout:   {CodeRequestTimeout, "RequestTimeout", "Request timed out", CategoryTimeout, SeverityError},
}

// GetErrorCodeInfo returns information about an error code
func GetErrorCodeInfo(code protocol.ErrorCode) (ErrorCodeInfo, bool) {
	info, exists := errorCodeRegistry[code]
	return info, exists
}

// GetErrorCodeName returns the name of an error code
func GetErrorCodeName(code protocol.ErrorCode) string {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Name
	}
	return "UnknownError"
}

// GetErrorCodeDescription returns the description of an error code
func GetErrorCodeDescription(code protocol.ErrorCode) string {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Description
	}
	return "Unknown error"
}

// GetErrorCodeCategory returns the category of an error code
func GetErrorCodeCategory(code protocol.ErrorCode) Category {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Category
	}
	if IsServerErrorCode(code) {
		return CategoryInternal
	}
	return CategoryProtocol
}

// GetErrorCodeSeverity returns the severity of an error code
func GetErrorCodeSeverity(code protocol.ErrorCode) Severity {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Severity
	}
	return SeverityError
}

// ListErrorCodes returns all registered error codes
func ListErrorCodes() []ErrorCodeInfo {
	codes := make([]ErrorCodeInfo, 0, len(errorCodeRegistry))
	for _, info := range errorCodeRegistry {
		codes = append(codes, info)
	}
	return codes
}

// IsReservedCode checks if a code lies in the range JSON-RPC reserves for
// pre-defined errors
func IsReservedCode(code protocol.ErrorCode) bool {
	return code >= -32768 && code <= -32000
}

// IsServerErrorCode checks if a code is in the implementation-defined
// server error range
func IsServerErrorCode(code protocol.ErrorCode) bool {
	return code >= -32099 && code <= -32000
}
