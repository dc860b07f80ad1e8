package visiterrors

import (
	"net/http"

	"github.com/Yadlapure/health-care/internal/shared/apperror"
)

var (
	ErrVisitNotFound = apperror.New(
		apperror.CodeNotFound,
		"visit not found",
		http.StatusNotFound,
	)
	ErrNoVisitToday = apperror.New(
		apperror.CodeNotFound,
		"no visit assigned today",
		http.StatusNotFound,
	)
	ErrMissingVisitID = apperror.New(
		apperror.CodeInvalidInput,
		"visit id is required",
		http.StatusBadRequest,
	)
	ErrFromInPast = apperror.New(
		apperror.CodeInvalidInput,
		"visit cannot start before today",
		http.StatusBadRequest,
	)
	ErrInvalidWindow = apperror.New(
		apperror.CodeInvalidInput,
		"from_ts must be before or equal to_ts",
		http.StatusBadRequest,
	)
	ErrInvalidLocation = apperror.New(
		apperror.CodeInvalidInput,
		"lat/lng out of range",
		http.StatusBadRequest,
	)
	ErrExtendShrinks = apperror.New(
		apperror.CodeInvalidInput,
		"new to_ts must not be before the current end date",
		http.StatusBadRequest,
	)
	ErrNotesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"provide notes",
		http.StatusBadRequest,
	)
	ErrImageRequired = apperror.New(
		apperror.CodeInvalidInput,
		"proof image is required",
		http.StatusBadRequest,
	)
	ErrNoImageKeys = apperror.New(
		apperror.CodeInvalidInput,
		"at least one image key is required",
		http.StatusBadRequest,
	)
	ErrClientOverlap = apperror.New(
		apperror.CodeConflict,
		"client already has a visit in this period",
		http.StatusConflict,
	)
	ErrEmployeeOverlap = apperror.New(
		apperror.CodeConflict,
		"employee already has a visit in this period",
		http.StatusConflict,
	)
	ErrVisitClosed = apperror.New(
		apperror.CodeConflict,
		"visit already closed",
		http.StatusConflict,
	)
	ErrVisitExists = apperror.New(
		apperror.CodeConflict,
		"visit id already exists",
		http.StatusConflict,
	)
	ErrConcurrentUpdate = apperror.New(
		apperror.CodeConflict,
		"visit was modified concurrently, retry the request",
		http.StatusConflict,
	)
	ErrVisitCancelled = apperror.New(
		apperror.CodeInvalidState,
		"visit is cancelled",
		http.StatusConflict,
	)
	ErrVitalsBeforeCheckout = apperror.New(
		apperror.CodeInvalidState,
		"provide vitals before checkout",
		http.StatusConflict,
	)
	ErrCheckInBeforeVitals = apperror.New(
		apperror.CodeInvalidState,
		"check in before recording vitals",
		http.StatusConflict,
	)
	ErrDayClosed = apperror.New(
		apperror.CodeInvalidState,
		"day already closed",
		http.StatusConflict,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid attendance transition",
		http.StatusConflict,
	)
	ErrNotAssignedEmployee = apperror.New(
		apperror.CodeForbidden,
		"visit is not assigned to you",
		http.StatusForbidden,
	)
	ErrNotVisitParty = apperror.New(
		apperror.CodeForbidden,
		"you are not a party to this visit",
		http.StatusForbidden,
	)
	ErrImageNotOwned = apperror.New(
		apperror.CodeForbidden,
		"image does not belong to any of your visits",
		http.StatusForbidden,
	)
)
