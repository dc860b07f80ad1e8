package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yadlapure/health-care/internal/attendance"
	"github.com/Yadlapure/health-care/internal/config"
	"github.com/Yadlapure/health-care/internal/events"
	"github.com/Yadlapure/health-care/internal/messaging/kafka/consumer"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/shared/connection"
	"github.com/Yadlapure/health-care/internal/visit"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer keeps the attendance report cache in step with visit changes.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	reports := attendance.NewService(
		visit.NewRepository(gormDB),
		attendance.NewCache(rdb, cfg.ReportCacheTTL, zap.L()),
		clock.New(cfg.Location),
		metrics.New(prometheus.DefaultRegisterer),
		zap.L(),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.VisitLifecycleTopic,
		GroupID:        cfg.KafkaGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeVisitLifecycle(ctx, reader, reports, zap.L())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
