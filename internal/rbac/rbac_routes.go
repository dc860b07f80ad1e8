package rbac

import (
	"github.com/Yadlapure/health-care/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/rbac", middleware.RoleMiddleware("admin"))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", handler.Policies)
	}
}
