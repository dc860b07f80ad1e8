package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Yadlapure/health-care/internal/middleware"
	"github.com/Yadlapure/health-care/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, userID, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID:           userID,
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

type staticAuthorizer map[string]bool

func (a staticAuthorizer) Allow(role, resource, action string) (bool, error) {
	if role == "broken" {
		return false, errors.New("policy store unavailable")
	}
	return a[role+":"+resource+":"+action], nil
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/me", middleware.AuthMiddleware(secret), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id": c.GetString(middleware.CtxUserID),
				"role":    c.GetString(middleware.CtxRole),
				"ctx":     contextutil.GetUserID(c.Request.Context()),
			})
		})
		return r
	}

	t.Run("valid bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "emp-1", "employee", time.Now().Add(time.Hour)))
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"emp-1","role":"employee","ctx":"emp-1"}`, w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, "admin-1", "admin", time.Now().Add(time.Hour))})
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token not found")
	})

	t.Run("expired token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "emp-1", "employee", time.Now().Add(-time.Minute)))
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{UserID: "emp-1", Role: "employee"})
		s, _ := tok.SignedString([]byte("other"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+s)
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authz := staticAuthorizer{"admin:visit:assign": true}

	run := func(role string) *httptest.ResponseRecorder {
		r := gin.New()
		r.POST("/assign", func(c *gin.Context) {
			if role != "" {
				c.Set(middleware.CtxRole, role)
			}
			c.Next()
		}, middleware.RBACAuthorize(authz, "visit", "assign"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/assign", nil))
		return w
	}

	assert.Equal(t, http.StatusNoContent, run("admin").Code)
	assert.Equal(t, http.StatusForbidden, run("employee").Code)
	assert.Equal(t, http.StatusUnauthorized, run("").Code)
	assert.Equal(t, http.StatusInternalServerError, run("broken").Code)
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cacheKey := "idemp:/assign:admin-1:key-1"
	lockKey := cacheKey + ":lock"

	newRouter := func(mw gin.HandlerFunc, calls *int) *gin.Engine {
		r := gin.New()
		r.POST("/assign", func(c *gin.Context) {
			c.Set(middleware.CtxUserID, "admin-1")
			c.Next()
		}, mw, func(c *gin.Context) {
			*calls++
			c.JSON(http.StatusCreated, gin.H{"visit_id": "V000001"})
		})
		return r
	}
	request := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/assign", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		return req
	}

	t.Run("first request runs and stores the response", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.ExpectSet(cacheKey, []byte(`{"visit_id":"V000001"}`), 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		calls := 0
		w := httptest.NewRecorder()
		newRouter(middleware.Idempotency(rdb), &calls).ServeHTTP(w, request())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("repeat replays without running the handler", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).SetVal(`{"visit_id":"V000001"}`)

		calls := 0
		w := httptest.NewRecorder()
		newRouter(middleware.Idempotency(rdb), &calls).ServeHTTP(w, request())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, calls)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.JSONEq(t, `{"visit_id":"V000001"}`, w.Body.String())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		calls := 0
		w := httptest.NewRecorder()
		newRouter(middleware.Idempotency(rdb), &calls).ServeHTTP(w, request())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
	})
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/rid", middleware.RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"propagates caller id", "req-42.a_b", true},
		{"generates when missing", "", false},
		{"replaces unsafe id", "bad id\nwith newline", false},
		{"replaces oversized id", strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/rid", nil)
			if tt.header != "" {
				req.Header.Set(middleware.HeaderRequestID, tt.header)
			}
			r.ServeHTTP(w, req)

			got := w.Header().Get(middleware.HeaderRequestID)
			assert.Equal(t, got, w.Body.String())
			if tt.keep {
				assert.Equal(t, tt.header, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
