package attendance_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Yadlapure/health-care/internal/attendance"
	"github.com/Yadlapure/health-care/internal/attendance/mock"
	"github.com/Yadlapure/health-care/internal/identity"
	"github.com/Yadlapure/health-care/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newContext(target, path, userID string, role identity.Role) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	c.Params = gin.Params{{Key: "employee_id", Value: target}}
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxRole, string(role))
	return c, w
}

func TestHandler_GetReport(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("employee reads own report", func(t *testing.T) {
		svc := mock.NewMockService(gomock.NewController(t))
		svc.EXPECT().GetAttendance(gomock.Any(), "emp-1", jan1, jan7).
			Return(attendance.Report{EmployeeID: "emp-1", Empty: true, Days: []attendance.DayReport{}}, nil)

		c, w := newContext("emp-1", "/api/v1/attendance/emp-1?start=2024-01-01&end=2024-01-07", "emp-1", identity.RoleEmployee)
		attendance.NewHandler(svc, zap.NewNop()).GetReport(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"empty":true`)
	})

	t.Run("employee cannot read another employee", func(t *testing.T) {
		svc := mock.NewMockService(gomock.NewController(t))

		c, w := newContext("emp-2", "/api/v1/attendance/emp-2?start=2024-01-01&end=2024-01-07", "emp-1", identity.RoleEmployee)
		attendance.NewHandler(svc, zap.NewNop()).GetReport(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin reads anyone", func(t *testing.T) {
		svc := mock.NewMockService(gomock.NewController(t))
		svc.EXPECT().GetAttendance(gomock.Any(), "emp-2", jan1, jan7).Return(attendance.Report{EmployeeID: "emp-2"}, nil)

		c, w := newContext("emp-2", "/api/v1/attendance/emp-2?start=2024-01-01&end=2024-01-07", "admin-1", identity.RoleAdmin)
		attendance.NewHandler(svc, zap.NewNop()).GetReport(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing range", func(t *testing.T) {
		svc := mock.NewMockService(gomock.NewController(t))

		c, w := newContext("emp-1", "/api/v1/attendance/emp-1", "admin-1", identity.RoleAdmin)
		attendance.NewHandler(svc, zap.NewNop()).GetReport(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := mock.NewMockService(gomock.NewController(t))

		c, w := newContext("emp-1", "/api/v1/attendance/emp-1?start=2024-13-01&end=2024-01-07", "admin-1", identity.RoleAdmin)
		attendance.NewHandler(svc, zap.NewNop()).GetReport(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Export(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := mock.NewMockService(gomock.NewController(t))
	rep := attendance.Report{EmployeeID: "emp-1", Start: "2024-01-01", End: "2024-01-07"}
	svc.EXPECT().Export(gomock.Any(), "emp-1", jan1, jan7).Return(rep, []byte("PK-data"), nil)

	c, w := newContext("emp-1", "/api/v1/attendance/emp-1/export?start=2024-01-01&end=2024-01-07", "admin-1", identity.RoleAdmin)
	attendance.NewHandler(svc, zap.NewNop()).Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_emp-1_2024-01-01_2024-01-07.xlsx")
	assert.Equal(t, "PK-data", w.Body.String())
}
