package middleware

import (
	"time"

	"github.com/Yadlapure/health-care/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog writes one line per request with the request id and the
// authenticated caller. It must run after RequestID and AuthMiddleware.
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("http.access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l := contextutil.Logger(c.Request.Context(), logger)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= 500 {
			l.Error("http request", fields...)
			return
		}
		l.Info("http request", fields...)
	}
}
