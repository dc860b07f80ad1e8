package identityerrors

import (
	"net/http"

	"github.com/Yadlapure/health-care/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"Client not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrAdminNotFound = apperror.New(
		apperror.CodeNotFound,
		"Admin not found",
		http.StatusNotFound,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role",
		http.StatusBadRequest,
	)
	ErrMissingUserID = apperror.New(
		apperror.CodeInvalidInput,
		"User ID is required",
		http.StatusBadRequest,
	)
)
