package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yadlapure/health-care/internal/bootstrap"
	"github.com/Yadlapure/health-care/internal/config"
	"github.com/Yadlapure/health-care/internal/messaging/kafka"
	"github.com/Yadlapure/health-care/internal/messaging/kafka/producer"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/reconcile"
	"github.com/Yadlapure/health-care/internal/shared/connection"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	outboxRetention   = 7 * 24 * time.Hour
	purgeInterval     = time.Hour
	workerStopTimeout = 30 * time.Second
)

// RunWorker relays the outbox to Kafka and runs the reconciliation sweep on
// its cron schedule until SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	d := deps{
		cfg:     cfg,
		db:      sqlDB,
		gormDB:  gormDB,
		metrics: metrics.New(prometheus.DefaultRegisterer),
		logger:  zap.L(),
	}
	core := newVisitCore(d)
	sweep := reconcile.NewService(core.repo, core.writer, core.clock, d.metrics, d.logger)

	scheduler, err := reconcile.NewScheduler(sweep, cfg.SweepSchedule, cfg.Location, d.logger)
	if err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	loops := workerLoops{
		relay:     producer.NewRelay(outboxRepo, kafkaWriter, d.logger),
		interval:  cfg.OutboxInterval,
		purge:     func(ctx context.Context) { purgeOutbox(ctx, outboxRepo, logger) },
		scheduler: scheduler,
		audit:     bootstrap.NewStdoutAuditLogger(zap.L()),
		logger:    logger,
		meta:      map[string]any{"sweep_schedule": cfg.SweepSchedule},
	}
	if cfg.MetricsPort != "" {
		loops.metrics = newMetricsServer(cfg.MetricsPort)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The deferred closes of kafkaWriter and sqlDB run only after every loop has returned.
	return loops.run(sigCtx)
}

type relayRunner interface {
	Run(ctx context.Context, pollInterval time.Duration)
}

type sweepScheduler interface {
	Start()
	Stop(ctx context.Context)
}

// workerLoops is everything the worker keeps running between start and shutdown.
type workerLoops struct {
	relay     relayRunner
	interval  time.Duration
	purge     func(ctx context.Context)
	scheduler sweepScheduler
	metrics   *http.Server
	audit     bootstrap.AuditLogger
	logger    *zap.Logger
	meta      map[string]any
}

// run blocks until ctx is done or the metrics listener fails, then stops the
// scheduler and metrics server and waits for the relay and purge loops.
func (w workerLoops) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w.relay.Run(gctx, w.interval)
		return nil
	})
	g.Go(func() error {
		w.purge(gctx)
		return nil
	})
	if w.metrics != nil {
		g.Go(func() error {
			w.logger.Info("metrics endpoint listening", zap.String("addr", w.metrics.Addr))
			if err := w.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics endpoint: %w", err)
			}
			return nil
		})
	}
	w.scheduler.Start()

	g.Go(func() error {
		<-gctx.Done()
		reason := "listener failed"
		if ctx.Err() != nil {
			reason = "signal"
		}
		meta := map[string]any{"reason": reason}
		for k, v := range w.meta {
			meta[k] = v
		}
		w.logger.Info("worker shutting down", zap.String("reason", reason))
		w.audit.Log(context.Background(), bootstrap.AuditLog{
			Action:  "WORKER_SHUTDOWN",
			Message: "Outbox relay and reconciliation scheduler are stopping",
			Meta:    meta,
		})

		stopCtx, cancel := context.WithTimeout(context.Background(), workerStopTimeout)
		defer cancel()
		w.scheduler.Stop(stopCtx)
		if w.metrics != nil {
			return w.metrics.Shutdown(stopCtx)
		}
		return nil
	})

	err := g.Wait()
	if err != nil {
		w.logger.Error("worker stopped with error", zap.Error(err))
		return err
	}
	w.logger.Info("worker exited gracefully")
	return nil
}

func newMetricsServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

func purgeOutbox(ctx context.Context, repo kafka.OutboxRepository, logger *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeSent(ctx, outboxRetention)
			if err != nil {
				logger.Error("purge sent outbox events failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("purged sent outbox events", zap.Int64("count", n))
			}
		}
	}
}
