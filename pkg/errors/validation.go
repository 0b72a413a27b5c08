package errors

import (
	"fmt"
)

// ValidationErrorData contains structured data for validation errors
type ValidationErrorData struct {
	Type       string      `json:"type,omitempty"`
	Field      string      `json:"field,omitempty"`
	Value      interface{} `json:"value,omitempty"`
	Expected   string      `json:"expected,omitempty"`
	Constraint string      `json:"constraint,omitempty"`
}

// PaginationErrorData contains structured data for pagination errors
type PaginationErrorData struct {
	Cursor string `json:"cursor,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Reason string `json:"reason"`
}

// InvalidParams creates a generic invalid params error
func InvalidParams(message string) MCPError {
	return NewError(CodeInvalidParams, message, CategoryValidation, SeverityError)
}

// InvalidParamsf creates a generic invalid params error with formatting
func InvalidParamsf(format string, args ...interface{}) MCPError {
	return NewErrorf(CodeInvalidParams, CategoryValidation, SeverityError, format, args...)
}

// MissingField creates an error for a required wire key that is absent
func MissingField(typ, field string) MCPError {
	return NewError(
		CodeInvalidParams,
		fmt.Sprintf("Missing required field %q in %s", field, typ),
		CategoryValidation,
		SeverityError,
	).WithData(&ValidationErrorData{
		Type:     typ,
		Field:    field,
		Expected: "required value",
	})
}

// InvalidEnum creates an error for a value outside a closed enumeration
func InvalidEnum(field string, value interface{}, validValues []string) MCPError {
	return NewError(
		CodeInvalidParams,
		fmt.Sprintf("Invalid value for field '%s': must be one of %v", field, validValues),
		CategoryValidation,
		SeverityError,
	).WithData(&ValidationErrorData{
		Field:      field,
		Value:      value,
		Expected:   fmt.Sprintf("one of %v", validValues),
		Constraint: "enumeration",
	})
}

// InvalidPaginationCursor creates an error for a cursor the server did not issue
func InvalidPaginationCursor(cursor string, reason string) MCPError {
	return NewError(
		CodeInvalidParams,
		fmt.Sprintf("Invalid pagination cursor: %s", reason),
		CategoryValidation,
		SeverityError,
	).WithData(&PaginationErrorData{
		Cursor: cursor,
		Reason: reason,
	})
}

// InvalidPaginationLimit creates an error for an out-of-range page size
func InvalidPaginationLimit(limit int, maxLimit int) MCPError {
	var message string
	if limit <= 0 {
		message = "Pagination limit must be positive"
	} else {
		message = fmt.Sprintf("Pagination limit %d exceeds maximum allowed limit %d", limit, maxLimit)
	}

	return NewError(
		CodeInvalidParams,
		message,
		CategoryValidation,
		SeverityError,
	).WithData(&PaginationErrorData{
		Limit:  limit,
		Reason: message,
	})
}
