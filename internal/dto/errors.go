package dto

// BaseError is the wire format for every failure.
// Code is a machine-readable snake_case kind; Message is human-readable.
// Internal detail (SQL text, stack traces) never goes into either.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names a violated request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse BaseError

type NotFoundErrorResponse BaseError

type ConflictErrorResponse BaseError

type UnavailableErrorResponse BaseError

type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}

func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}

func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}

// NewUnavailableError marks a transient failure the caller may retry with
// backoff (pool exhaustion, connection setup, credential refresh).
func NewUnavailableError(msg string) UnavailableErrorResponse {
	return UnavailableErrorResponse(BaseError{Code: "unavailable", Message: msg})
}

func NewInternalError() InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error"})
}
