package reconcile

import (
	"github.com/Yadlapure/health-care/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authz middleware.Authorizer) {
	internal := r.Group("/internal")
	internal.POST("/reconcile", middleware.RBACAuthorize(authz, "reconcile", "run"), h.Run)
}
