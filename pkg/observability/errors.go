package observability

import (
	"context"
	"errors"

	mcperrors "github.com/ajitpratap0/mcp-protocol-go/pkg/errors"
	"github.com/ajitpratap0/mcp-protocol-go/pkg/protocol"
)

var decodeReasons = []struct {
	sentinel error
	reason   string
}{
	{protocol.ErrMalformed, "malformed"},
	{protocol.ErrMissingField, "missing_field"},
	{protocol.ErrMissingContentType, "missing_content_type"},
	{protocol.ErrUnknownContentType, "unknown_content_type"},
	{protocol.ErrInvalidRequestID, "invalid_request_id"},
	{protocol.ErrInvalidVersion, "invalid_version"},
	{protocol.ErrInvalidEnum, "invalid_enum"},
	{protocol.ErrResponseExclusivity, "response_exclusivity"},
}

// ErrorReason categorizes errors into a low-cardinality label value
func ErrorReason(err error) string {
	if err == nil {
		return ""
	}

	for _, dr := range decodeReasons {
		if errors.Is(err, dr.sentinel) {
			return dr.reason
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}

	if mcpErr, ok := mcperrors.AsMCPError(err); ok {
		return codeReason(mcpErr.Code())
	}

	var rpcErr *protocol.Error
	if errors.As(err, &rpcErr) {
		return codeReason(rpcErr.Code)
	}

	return "unknown"
}

func codeReason(code protocol.ErrorCode) string {
	switch code {
	case protocol.ParseError:
		return "parse_error"
	case protocol.InvalidRequest:
		return "invalid_request"
	case protocol.MethodNotFound:
		return "method_not_found"
	case protocol.InvalidParams:
		return "invalid_params"
	case protocol.InternalError:
		return "internal_error"
	case mcperrors.CodeMessageTooLarge:
		return "too_large"
	}
	if mcperrors.IsServerErrorCode(code) {
		return "server_error"
	}
	return "unknown_error"
}
