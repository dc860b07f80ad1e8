package apperror

import (
	"fmt"
	"net/http"
)

// Codes are grouped by the category a caller is expected to react to.
const (
	// validation: the request can never succeed as sent
	CodeInvalidInput = "INVALID_INPUT"

	// authorization, decided at the HTTP boundary
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimited  = "RATE_LIMITED"

	CodeNotFound = "NOT_FOUND"

	// conflict: retrying later or with different data may succeed
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeProcessing   = "PROCESSING"

	// dependency and unexpected failures
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    any   // rendered as error.details, e.g. the offending field
	Err        error // optional cause, never rendered
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy carrying details. Sentinels stay untouched.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

func Validation(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

// InvalidState rejects an action that the current lifecycle status does not allow.
func InvalidState(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusConflict)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}
