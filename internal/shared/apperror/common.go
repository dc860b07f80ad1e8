package apperror

import "net/http"

var (
	ErrNotFound = NotFound("Resource")

	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden    = New(CodeForbidden, "You are not allowed to act on this visit or report", http.StatusForbidden)

	ErrInvalidInput = Validation("The provided input is invalid")

	ErrServiceUnavailable = New(CodeServiceUnavailable, "A required dependency is unavailable", http.StatusServiceUnavailable)
	ErrInternal           = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)

func RequiredField(field string) *AppError {
	return Validation(field + " is required").WithDetails(map[string]string{"field": field})
}

func InvalidField(field string) *AppError {
	return Validation(field + " is invalid").WithDetails(map[string]string{"field": field})
}

// Dependency wraps a failure of an external collaborator (object store, cache)
// that aborted the operation before anything was persisted.
func Dependency(err error, message string) *AppError {
	return Wrap(err, CodeServiceUnavailable, message, http.StatusServiceUnavailable)
}
