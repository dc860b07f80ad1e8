package attendance

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock

import (
	"context"
	"time"

	attendanceerrors "github.com/Yadlapure/health-care/internal/attendance/errors"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/visit"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxRangeDays = 366

type VisitFinder interface {
	Find(ctx context.Context, f visit.Filter) ([]visit.Visit, error)
}

type Service interface {
	GetAttendance(ctx context.Context, employeeID string, start, end time.Time) (Report, error)
	Export(ctx context.Context, employeeID string, start, end time.Time) (Report, []byte, error)
	Invalidate(ctx context.Context, employeeID string) error
}

type service struct {
	visits  VisitFinder
	cache   *Cache
	clock   *clock.Clock
	metrics *metrics.Metrics
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(visits VisitFinder, cache *Cache, clk *clock.Clock, m *metrics.Metrics, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		visits:  visits,
		cache:   cache,
		clock:   clk,
		metrics: m,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

// ParseRange validates a YYYY-MM-DD range from the query string.
func ParseRange(q ReportQuery) (time.Time, time.Time, error) {
	start, err := clock.ParseDate(q.Start)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
	}
	end, err := clock.ParseDate(q.End)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
	}
	return start, end, nil
}

func (s *service) GetAttendance(ctx context.Context, employeeID string, start, end time.Time) (Report, error) {
	if end.Before(start) {
		return Report{}, attendanceerrors.ErrInvalidRange
	}
	if end.Sub(start) >= maxRangeDays*24*time.Hour {
		return Report{}, attendanceerrors.ErrRangeTooLong
	}

	key := GetReportKey(employeeID, clock.FormatDate(start), clock.FormatDate(end))
	if rep, ok := s.cache.Get(ctx, key); ok {
		s.metrics.ReportCacheHit()
		return rep, nil
	}
	s.metrics.ReportCacheMiss()

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		began := time.Now()
		from, to := s.clock.StartOf(start), s.clock.EndOf(end)
		visits, err := s.visits.Find(ctx, visit.Filter{
			EmpID:           employeeID,
			ExcludeStatuses: []visit.MainStatus{visit.MainCancelled},
			OverlapFrom:     &from,
			OverlapTo:       &to,
		})
		if err != nil {
			return nil, err
		}
		rep := buildReport(employeeID, visits, start, end, s.clock)
		s.metrics.ObserveReport(began)
		s.cache.Set(ctx, rep)
		return rep, nil
	})
	if err != nil {
		s.logger.Error("build attendance report failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Report{}, err
	}
	return v.(Report), nil
}

func (s *service) Export(ctx context.Context, employeeID string, start, end time.Time) (Report, []byte, error) {
	rep, err := s.GetAttendance(ctx, employeeID, start, end)
	if err != nil {
		return Report{}, nil, err
	}
	data, err := renderWorkbook(rep, s.clock.Location())
	if err != nil {
		return Report{}, nil, err
	}
	return rep, data, nil
}

func (s *service) Invalidate(ctx context.Context, employeeID string) error {
	return s.cache.InvalidateEmployee(ctx, employeeID)
}
