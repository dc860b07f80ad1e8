package attendance

import (
	"net/http"

	attendanceerrors "github.com/Yadlapure/health-care/internal/attendance/errors"
	"github.com/Yadlapure/health-care/internal/identity"
	"github.com/Yadlapure/health-care/internal/middleware"
	"github.com/Yadlapure/health-care/internal/shared/apperror"
	"github.com/Yadlapure/health-care/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// target resolves the employee whose report is requested and enforces that
// employees only see their own.
func (h *Handler) target(c *gin.Context) (string, bool) {
	employeeID := c.Param("employee_id")
	role := identity.Role(c.GetString(middleware.CtxRole))
	if role == identity.RoleEmployee && employeeID != c.GetString(middleware.CtxUserID) {
		h.writeServiceError(c, attendanceerrors.ErrOtherEmployee)
		return "", false
	}
	return employeeID, true
}

func (h *Handler) GetReport(c *gin.Context) {
	employeeID, ok := h.target(c)
	if !ok {
		return
	}

	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Invalid(c, err)
		return
	}
	start, end, err := ParseRange(q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rep, err := h.service.GetAttendance(c.Request.Context(), employeeID, start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rep, nil)
}

func (h *Handler) Export(c *gin.Context) {
	employeeID, ok := h.target(c)
	if !ok {
		return
	}

	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Invalid(c, err)
		return
	}
	start, end, err := ParseRange(q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rep, data, err := h.service.Export(c.Request.Context(), employeeID, start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename(rep)+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
