package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

// envelopeTypes are the decode targets whose failures make the whole
// message invalid rather than just its params.
var envelopeTypes = map[string]bool{
	"Message":      true,
	"Batch":        true,
	"Request":      true,
	"Notification": true,
	"Response":     true,
	"RequestID":    true,
	"Error":        true,
	"ErrorCode":    true,
}

// FromDecodeError maps a decode failure to the JSON-RPC error a receiver
// should answer with. Only text that is not JSON becomes ParseError. Valid
// JSON with a bad envelope (non-object, empty batch, wrong member types,
// version, id, missing method) becomes InvalidRequest and everything inside
// params becomes InvalidParams. Errors that are not decode failures are
// passed to ConvertStandardError.
func FromDecodeError(err error) MCPError {
	if err == nil {
		return nil
	}

	var de *protocol.DecodeError
	if !stderrors.As(err, &de) {
		return ConvertStandardError(err)
	}

	data := &ValidationErrorData{Type: de.Type, Field: de.Field}
	ctx := &Context{Type: de.Type, Field: de.Field}

	var code protocol.ErrorCode
	var category Category
	var message string
	var syntaxErr *json.SyntaxError
	switch {
	case stderrors.As(err, &syntaxErr):
		code, category, message = CodeParseError, CategoryProtocol, "Parse error"
	case envelopeTypes[de.Type]:
		code, category, message = CodeInvalidRequest, CategoryProtocol, "Invalid request"
	default:
		code, category, message = CodeInvalidParams, CategoryValidation, "Invalid params"
	}

	return WrapError(err, code, message, category, SeverityError).
		WithDetail(de.Error()).
		WithData(data).
		WithContext(ctx)
}

// ToJSONRPCError converts any error to a JSON-RPC error object. Data that
// cannot be encoded is dropped rather than failing the conversion.
func ToJSONRPCError(err error) *protocol.Error {
	if err == nil {
		return nil
	}

	mcpErr, ok := AsMCPError(err)
	if !ok {
		var rpcErr *protocol.Error
		if stderrors.As(err, &rpcErr) {
			return rpcErr
		}
		mcpErr = FromDecodeError(err)
	}

	message := mcpErr.Message()
	if mcpErr.Details() != "" {
		message = mcpErr.Error()
	}

	if mcpErr.Data() == nil {
		return protocol.NewError(mcpErr.Code(), message)
	}
	withData, dataErr := protocol.NewErrorWithData(mcpErr.Code(), message, mcpErr.Data())
	if dataErr != nil {
		return protocol.NewError(mcpErr.Code(), message)
	}
	return withData
}

// ToJSONRPCResponse converts any error to a JSON-RPC error response for id
func ToJSONRPCResponse(err error, id protocol.RequestID) (*protocol.Response, error) {
	if err == nil {
		return nil, fmt.Errorf("cannot create error response from nil error")
	}
	return protocol.NewErrorResponse(id, ToJSONRPCError(err)), nil
}

// FromJSONRPCError converts a received JSON-RPC error to an MCPError. The
// raw data member is kept as json.RawMessage.
func FromJSONRPCError(rpcErr *protocol.Error) MCPError {
	if rpcErr == nil {
		return nil
	}

	err := WrapError(
		rpcErr,
		rpcErr.Code,
		rpcErr.Message,
		GetErrorCodeCategory(rpcErr.Code),
		GetErrorCodeSeverity(rpcErr.Code),
	)
	if len(rpcErr.Data) > 0 {
		err = err.WithData(rpcErr.Data)
	}
	return err
}

// WrapProtocolError wraps err with the method and request id it occurred in
func WrapProtocolError(err error, method string, id protocol.RequestID) MCPError {
	if err == nil {
		return nil
	}

	mcpErr, ok := AsMCPError(err)
	if !ok {
		mcpErr = FromDecodeError(err)
	}

	ctx := Context{}
	if existing := mcpErr.Context(); existing != nil {
		ctx = *existing
	}
	ctx.Method = method
	ctx.RequestID = id.String()
	return mcpErr.WithContext(&ctx)
}

// ConvertStandardError converts common Go errors to appropriate MCP errors
func ConvertStandardError(err error) MCPError {
	if err == nil {
		return nil
	}

	if mcpErr, ok := AsMCPError(err); ok {
		return mcpErr
	}

	var rpcErr *protocol.Error
	if stderrors.As(err, &rpcErr) {
		return FromJSONRPCError(rpcErr)
	}

	switch {
	case stderrors.Is(err, context.Canceled):
		return WrapError(err, CodeRequestCancelled, "Request cancelled", CategoryCancelled, SeverityInfo)
	case stderrors.Is(err, context.DeadlineExceeded):
		return WrapError(err, CodeRequestTimeout, "Request timed out", CategoryTimeout, SeverityError)
	}

	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return WrapError(err, CodeParseError, "Parse error", CategoryProtocol, SeverityError)
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return WrapError(err, CodeInvalidParams, "Invalid parameter type", CategoryValidation, SeverityError)
	}

	return WrapError(err, CodeInternalError, "Internal error", CategoryInternal, SeverityError)
}

// CombineErrors combines multiple errors into a single MCPError. Nil
// entries are skipped; a single remaining error is converted directly.
func CombineErrors(errs []error) MCPError {
	validErrors := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			validErrors = append(validErrors, err)
		}
	}

	switch len(validErrors) {
	case 0:
		return nil
	case 1:
		return FromDecodeError(validErrors[0])
	}

	messages := make([]string, len(validErrors))
	errorData := make([]interface{}, len(validErrors))
	for i, err := range validErrors {
		mcpErr := FromDecodeError(err)
		messages[i] = err.Error()
		errorData[i] = map[string]interface{}{
			"code":    int(mcpErr.Code()),
			"message": err.Error(),
		}
	}

	// The first failure decides the code so a batch of parse errors still
	// reports ParseError.
	first := FromDecodeError(validErrors[0])
	return WrapError(
		stderrors.Join(validErrors...),
		first.Code(),
		fmt.Sprintf("Multiple errors occurred: %v", messages),
		first.Category(),
		SeverityError,
	).WithData(map[string]interface{}{
		"errors": errorData,
		"count":  len(validErrors),
	})
}
