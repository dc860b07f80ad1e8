package reconcile_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Yadlapure/health-care/internal/reconcile"
	"github.com/Yadlapure/health-care/internal/reconcile/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestHandler_Run(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns counts", func(t *testing.T) {
		svc := mock.NewMockService(gomock.NewController(t))
		svc.EXPECT().Run(gomock.Any()).Return(reconcile.Result{Appended: 3, Closed: 1}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/internal/reconcile", nil)

		reconcile.NewHandler(svc, zap.NewNop()).Run(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Ok   bool             `json:"ok"`
			Data reconcile.Result `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, 3, body.Data.Appended)
		assert.Equal(t, 1, body.Data.Closed)
	})

	t.Run("failure is internal error", func(t *testing.T) {
		svc := mock.NewMockService(gomock.NewController(t))
		svc.EXPECT().Run(gomock.Any()).Return(reconcile.Result{}, errors.New("boom"))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/internal/reconcile", nil)

		reconcile.NewHandler(svc, zap.NewNop()).Run(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
