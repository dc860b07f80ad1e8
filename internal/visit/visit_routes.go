package visit

import (
	"github.com/Yadlapure/health-care/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authz middleware.Authorizer, rdb *redis.Client) {
	visits := r.Group("/visits")
	{
		visits.GET("", middleware.RBACAuthorize(authz, "visit", "read"), h.List)
		visits.GET("/:visit_id", middleware.RBACAuthorize(authz, "visit", "read"), h.GetByID)

		visits.POST("/assign",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(authz, "visit", "assign"),
			middleware.Idempotency(rdb),
			h.Assign,
		)
		visits.POST("/unassign",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(authz, "visit", "assign"),
			h.Unassign,
		)
		visits.POST("/extend",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(authz, "visit", "assign"),
			h.Extend,
		)

		visits.POST("/check-in-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(authz, "attendance", "write"),
			h.CheckInOut,
		)
		visits.POST("/update-vitals",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(authz, "attendance", "write"),
			h.UpdateVitals,
		)

		visits.POST("/image-urls", middleware.RBACAuthorize(authz, "image", "read"), h.ImageURLs)
	}
}
