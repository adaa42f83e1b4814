// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Code carries a machine-readable reason ("bad_user", "no_product", …) when
// the client is expected to branch on it; it is empty for generic failures.
type APIError struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Error lets services return an *APIError directly; handlers detect it and
// pass the envelope through unchanged.
func (e *APIError) Error() string { return e.Detail }

// Coded builds an error with a machine-readable reason code.
func Coded(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// CodeForbidden marks authorization failures; handlers answer them with 403
// instead of the generic 400.
const CodeForbidden = "forbidden"

// Forbidden builds an authorization-denied error.
func Forbidden(msg string) *APIError {
	return &APIError{Code: CodeForbidden, Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}
