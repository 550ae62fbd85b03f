// Package apierror provides the standardized error envelope for the API.
// All 4xx/5xx responses go through this package so that clients always see
// the same shape and internal details (stack traces, DB errors) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// ValidationError carries per-field failures from request validation.
type ValidationError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Error: "Error de validacion", Fields: fields}
}
