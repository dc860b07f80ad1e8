package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/Yadlapure/health-care/internal/shared/apperror"
	"github.com/Yadlapure/health-care/internal/shared/contextutil"
	"github.com/Yadlapure/health-care/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Keys under which the authenticated caller is stored on the gin context.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrTokenInvalid = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New(apperror.CodeUnauthorized, "Token expired", http.StatusUnauthorized)
)

// Claims carried by access tokens. Role is one of admin, employee or client.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, ErrTokenMissing)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired)
				return
			}
			abortWith(c, ErrTokenInvalid)
			return
		}
		if claims.UserID == "" || claims.Role == "" {
			abortWith(c, ErrTokenInvalid)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(allowedRoles, c.GetString(CtxRole)) {
			abortWith(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
