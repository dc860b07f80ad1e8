package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yadlapure/health-care/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// StartHTTPServer serves router until SIGINT or SIGTERM or a listener failure,
// then drains in-flight requests and runs onShutdown hooks in order.
func StartHTTPServer(
	router *gin.Engine,
	cfg config.HTTPConfig,
	auditLogger AuditLogger,
	onShutdown ...func(ctx context.Context),
) error {
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	logger := zap.L().Named("http.server")

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		logger.Info("HTTP server running", zap.String("port", cfg.Port))
		auditLogger.Log(gctx, AuditLog{Action: "SERVER_START", Message: "API accepting visit traffic", Meta: map[string]any{"port": cfg.Port}})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		reason := "listener failed"
		if sigCtx.Err() != nil {
			reason = "signal"
		}
		auditLogger.Log(context.Background(), AuditLog{
			Action:  "SERVER_SHUTDOWN",
			Message: "Server is shutting down",
			Meta:    map[string]any{"reason": reason},
		})

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(ctx)
		for _, fn := range onShutdown {
			fn(ctx)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("HTTP server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("Server exited gracefully")
	return nil
}
