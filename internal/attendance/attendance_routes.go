package attendance

import (
	"github.com/Yadlapure/health-care/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authz middleware.Authorizer) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("/:employee_id", middleware.RBACAuthorize(authz, "attendance", "read"), h.GetReport)
		attendance.GET("/:employee_id/export", middleware.RBACAuthorize(authz, "attendance", "read"), h.Export)
	}
}
