package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/apperror"
	"github.com/Yadlapure/health-care/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL  = 24 * time.Hour
	idempotencyLock = 30 * time.Second
)

// bodyRecorder keeps a copy of what the handler writes.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key and
// rejects a duplicate that arrives while the first request is still running.
// Only 2xx responses are stored.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if rdb == nil || key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString(CtxUserID), key)
		lockKey := cacheKey + ":lock"

		if cached, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			c.Header("Idempotent-Replay", "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLock).Result()
		if err != nil {
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeProcessing,
				"request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}
		defer rdb.Del(ctx, lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if status := rec.Status(); status >= 200 && status < 300 {
			_ = rdb.Set(ctx, cacheKey, rec.body.Bytes(), idempotencyTTL).Err()
		}
	}
}
