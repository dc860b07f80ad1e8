package reconcile

import (
	"net/http"

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
	l := zap.L().Named("reconcile.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reconcile.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Run(c *gin.Context) {
	res, err := h.service.Run(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Error("manual sweep failed", zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
