package reconcile

//go:generate mockgen -source=reconcile_service.go -destination=mock/reconcile_service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/Yadlapure/health-care/internal/events"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/visit"

	"go.uber.org/zap"
)

// Result counts what a single sweep changed.
type Result struct {
	Appended int `json:"appended"`
	Closed   int `json:"closed"`
	Failed   int `json:"failed"`
}

type VisitFinder interface {
	Find(ctx context.Context, f visit.Filter) ([]visit.Visit, error)
}

type Service interface {
	Run(ctx context.Context) (Result, error)
}

type service struct {
	finder  VisitFinder
	writer  visit.Writer
	clock   *clock.Clock
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewService(finder VisitFinder, writer visit.Writer, clk *clock.Clock, m *metrics.Metrics, logger ...*zap.Logger) Service {
	l := zap.L().Named("reconcile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reconcile.service")
	}
	return &service{finder: finder, writer: writer, clock: clk, metrics: m, logger: l}
}

// Run seeds tomorrow's day record on running visits and closes visits whose
// window ended before today. Running it twice in a row changes nothing the
// second time.
func (s *service) Run(ctx context.Context) (res Result, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveSweep(start, res.Appended, res.Closed, err) }()

	if err = s.seedTomorrow(ctx, &res); err != nil {
		return res, err
	}
	if err = s.closeElapsed(ctx, &res); err != nil {
		return res, err
	}

	s.logger.Info("sweep finished",
		zap.Int("appended", res.Appended),
		zap.Int("closed", res.Closed),
		zap.Int("failed", res.Failed),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

func (s *service) seedTomorrow(ctx context.Context, res *Result) error {
	now := s.clock.Now()
	tomorrow := s.clock.Tomorrow()

	running, err := s.finder.Find(ctx, visit.Filter{
		Statuses:    []visit.MainStatus{visit.MainInitiated, visit.MainCheckedIn},
		ToOnOrAfter: &now,
	})
	if err != nil {
		return err
	}

	for _, candidate := range running {
		if err := ctx.Err(); err != nil {
			return err
		}
		seeded := false
		_, err := s.writer.Apply(ctx, candidate.VisitID, func(v *visit.Visit) ([]visit.Change, error) {
			seeded = v.SeedDay(tomorrow, s.clock.DateOf(v.FromTS), s.clock.DateOf(v.ToTS))
			if !seeded {
				return nil, nil
			}
			return []visit.Change{visit.DayChange(events.VisitDayAppended, tomorrow)}, nil
		})
		if err != nil {
			res.Failed++
			s.logger.Error("seed day failed",
				zap.String("visit_id", candidate.VisitID),
				zap.String("for_date", clock.FormatDate(tomorrow)),
				zap.Error(err),
			)
			continue
		}
		if seeded {
			res.Appended++
		}
	}
	return nil
}

func (s *service) closeElapsed(ctx context.Context, res *Result) error {
	cutoff := s.clock.StartOf(s.clock.Today())

	elapsed, err := s.finder.Find(ctx, visit.Filter{
		ExcludeStatuses: []visit.MainStatus{visit.MainCancelled, visit.MainCheckedOut},
		ToBefore:        &cutoff,
	})
	if err != nil {
		return err
	}

	for _, candidate := range elapsed {
		if err := ctx.Err(); err != nil {
			return err
		}
		closed := false
		_, err := s.writer.Apply(ctx, candidate.VisitID, func(v *visit.Visit) ([]visit.Change, error) {
			closed = v.Close()
			if !closed {
				return nil, nil
			}
			return []visit.Change{{EventType: events.VisitClosed}}, nil
		})
		if err != nil {
			res.Failed++
			s.logger.Error("close visit failed", zap.String("visit_id", candidate.VisitID), zap.Error(err))
			continue
		}
		if closed {
			res.Closed++
		}
	}
	return nil
}
