package middleware

import (
	"net/http"

	"github.com/Yadlapure/health-care/internal/shared/apperror"
	"github.com/Yadlapure/health-care/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorizer decides whether a role may perform action on resource.
type Authorizer interface {
	Allow(role, resource, action string) (bool, error)
}

func RBACAuthorize(authz Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			abortWith(c, ErrTokenMissing)
			return
		}

		allowed, err := authz.Allow(role, resource, action)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource", resource+":"+action)
			c.Abort()
			return
		}
		c.Next()
	}
}
