package app

import (
	"context"

	"github.com/Yadlapure/health-care/internal/blobstore"
	"github.com/Yadlapure/health-care/internal/config"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/middleware"
	"github.com/Yadlapure/health-care/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure and mounts every module on router. The
// returned cleanup closes the connections and must run after the server stops.
func BuildApp(router *gin.Engine, cfg config.Config) (func(context.Context), error) {
	logger := zap.L().Named("app.api")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	blobs, err := blobstore.NewOSSStore(cfg.OSS, logger)
	if err != nil {
		_ = sqlDB.Close()
		_ = rdb.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router.Use(middleware.RequestID())

	// 2. Register Modules & Routes
	err = registerModules(router, deps{
		cfg:      cfg,
		db:       sqlDB,
		gormDB:   gormDB,
		rdb:      rdb,
		blobs:    blobs,
		metrics:  metrics.New(reg),
		gatherer: reg,
		logger:   zap.L(),
	})
	if err != nil {
		_ = sqlDB.Close()
		_ = rdb.Close()
		return nil, err
	}

	cleanup := func(context.Context) {
		if err := rdb.Close(); err != nil {
			logger.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database failed", zap.Error(err))
		}
	}
	return cleanup, nil
}
