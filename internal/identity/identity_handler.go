package identity

import (
	"net/http"
	"strconv"

	"github.com/Yadlapure/health-care/internal/middleware"
	"github.com/Yadlapure/health-care/internal/shared/apperror"
	"github.com/Yadlapure/health-care/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("identity.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("identity request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	var q ListProfilesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("http list identities validation failed", zap.Error(err))
		response.Invalid(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), Role(q.Role))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	userID := c.Param("user_id")
	h.logger.Debug("http get identity", zap.String("user_id", userID))

	resp, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Me returns the caller's own profile, for any role.
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
