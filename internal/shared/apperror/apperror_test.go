package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Yadlapure/health-care/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "overlap", http.StatusConflict)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
		assert.Equal(t, "overlap", httpErr.Message)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("extend: %w", apperror.ErrNotFound)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("dependency error", func(t *testing.T) {
		err := apperror.Dependency(errors.New("dial tcp"), "upload failed")
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
		assert.Equal(t, "upload failed", httpErr.Message)
		assert.True(t, apperror.Is(err, apperror.CodeServiceUnavailable))
	})

	t.Run("plain error hides message", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "pq")
	})
}

func TestMapValidationError(t *testing.T) {
	type req struct {
		Notes string  `validate:"required"`
		Lat   float64 `validate:"gte=-90,lte=90"`
	}
	v := validator.New()

	err := apperror.MapValidationError(v.Struct(req{Lat: 10}))
	assert.Equal(t, "Notes is required", err.Error())

	err = apperror.MapValidationError(v.Struct(req{Notes: "ok", Lat: 200}))
	assert.Equal(t, "Lat is invalid", err.Error())

	err = apperror.MapValidationError(errors.New("eof"))
	assert.Equal(t, "Invalid input", err.Error())
}

func TestRequiredField_CarriesDetails(t *testing.T) {
	err := apperror.RequiredField("Notes")

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, map[string]string{"field": "Notes"}, httpErr.Details)
}

func TestWithDetails_LeavesSentinelUntouched(t *testing.T) {
	withDetails := apperror.ErrInvalidInput.WithDetails("lat")

	assert.Nil(t, apperror.ErrInvalidInput.Details)
	assert.Equal(t, "lat", withDetails.Details)
	assert.Equal(t, apperror.ErrInvalidInput.Code, withDetails.Code)
}

func TestInvalidState(t *testing.T) {
	httpErr := apperror.ToHTTP(apperror.InvalidState("day already closed"))

	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, apperror.CodeInvalidState, httpErr.Code)
}

func TestValidObjectKey(t *testing.T) {
	valid := []string{"checkin/2024-01-02/V000001/6f1c.jpg", "prescription/x.png"}
	invalid := []string{"", "/etc/passwd", "checkin/../secrets", "a//b", `a\b`, "./a"}

	for _, k := range valid {
		assert.True(t, apperror.ValidObjectKey(k), k)
	}
	for _, k := range invalid {
		assert.False(t, apperror.ValidObjectKey(k), k)
	}
}
