package app

import (
	"database/sql"
	"net/http"

	"github.com/Yadlapure/health-care/internal/attendance"
	"github.com/Yadlapure/health-care/internal/blobstore"
	"github.com/Yadlapure/health-care/internal/config"
	"github.com/Yadlapure/health-care/internal/identity"
	"github.com/Yadlapure/health-care/internal/messaging/kafka"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/middleware"
	"github.com/Yadlapure/health-care/internal/rbac"
	"github.com/Yadlapure/health-care/internal/reconcile"
	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/shared/counter"
	"github.com/Yadlapure/health-care/internal/visit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type deps struct {
	cfg      config.Config
	db       *sql.DB
	gormDB   *gorm.DB
	rdb      *redis.Client
	blobs    blobstore.Store
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

// visitCore is the write path shared by the API and the worker.
type visitCore struct {
	repo   visit.Repository
	writer visit.Writer
	clock  *clock.Clock
}

func newVisitCore(d deps) visitCore {
	clk := clock.New(d.cfg.Location)
	repo := visit.NewRepository(d.gormDB)
	writer := visit.NewWriter(
		d.db,
		repo,
		counter.NewRepository(d.gormDB),
		kafka.NewOutboxRepository(d.db),
		d.metrics,
		d.logger,
	)
	return visitCore{repo: repo, writer: writer, clock: clk}
}

func registerModules(router *gin.Engine, d deps) error {
	core := newVisitCore(d)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService(rbac.DefaultPolicies, d.logger)
	if err != nil {
		return err
	}

	// --- Services ---
	identityService := identity.NewService(identity.NewRepository(d.gormDB), d.rdb, d.logger)
	visitService := visit.NewService(core.repo, core.writer, identityService, d.blobs, core.clock, d.metrics, d.logger)
	reconcileService := reconcile.NewService(core.repo, core.writer, core.clock, d.metrics, d.logger)
	attendanceService := attendance.NewService(
		core.repo,
		attendance.NewCache(d.rdb, d.cfg.ReportCacheTTL, d.logger),
		core.clock,
		d.metrics,
		d.logger,
	)

	// --- Handlers ---
	identityHandler := identity.NewHandler(identityService, d.logger)
	visitHandler := visit.NewHandler(visitService, d.logger)
	reconcileHandler := reconcile.NewHandler(reconcileService, d.logger)
	attendanceHandler := attendance.NewHandler(attendanceService, d.logger)
	rbacHandler := rbac.NewHandler(rbacService, d.logger)

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(20, 40),
		middleware.AuthMiddleware(d.cfg.JWTSecret),
		middleware.AccessLog(d.logger),
	)
	{
		identity.RegisterRoutes(api, identityHandler, rbacService)
		visit.RegisterRoutes(api, visitHandler, rbacService, d.rdb)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		reconcile.RegisterRoutes(api, reconcileHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
