package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const runTimeout = 10 * time.Minute

// Scheduler triggers Run on a cron schedule evaluated in the service timezone.
type Scheduler struct {
	cron    *cron.Cron
	service Service
	logger  *zap.Logger
}

func NewScheduler(svc Service, spec string, loc *time.Location, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.Named("reconcile.scheduler")
	cl := cronLogger{logger: logger}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	s := &Scheduler{cron: c, service: svc, logger: logger}

	if _, err := c.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("sweep schedule %q: %w", spec, err)
	}
	logger.Info("sweep scheduled", zap.String("schedule", spec), zap.String("timezone", loc.String()))
	return s, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := s.service.Run(ctx); err != nil {
		s.logger.Error("scheduled sweep failed", zap.Error(err))
	}
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("sweep still running at shutdown")
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
