package attendanceerrors

import (
	"net/http"

	"github.com/Yadlapure/health-care/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"dates must use YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"start must not be after end",
		http.StatusBadRequest,
	)
	ErrRangeTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"range may cover at most 366 days",
		http.StatusBadRequest,
	)
	ErrOtherEmployee = apperror.New(
		apperror.CodeForbidden,
		"employees may only read their own attendance",
		http.StatusForbidden,
	)
)
