package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/Yadlapure/health-care/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := response.Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, int64(5), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	page, _ = response.Paginate(items, 9, 2)
	assert.Empty(t, page)

	page, meta = response.Paginate(items, 0, 0)
	assert.Equal(t, items, page)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestInvalid(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type req struct {
		VisitID string `json:"visit_id" validate:"required"`
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return f.Tag.Get("json") })

	t.Run("names the field", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Invalid(c, v.Struct(req{}))

		var env response.ApiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "Visit Id is required", env.Error.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Invalid(c, errors.New("unexpected EOF"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid input")
	})
}
