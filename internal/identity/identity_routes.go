package identity

import (
	"github.com/Yadlapure/health-care/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	users := r.Group("/users")
	{
		users.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(authz, "user", "read"),
			handler.List,
		)
		users.GET("/me",
			middleware.RateLimitByUser(5, 20),
			handler.Me,
		)
		users.GET("/:user_id",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(authz, "user", "read"),
			handler.GetByID,
		)
	}
}
