package attendance_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Yadlapure/health-care/internal/attendance"
	attendanceerrors "github.com/Yadlapure/health-care/internal/attendance/errors"
	"github.com/Yadlapure/health-care/internal/attendance/mock"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/visit"

	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan7 = time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	now  = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	ttl  = 10 * time.Minute
)

func TestService_GetAttendance(t *testing.T) {
	ctx := context.Background()
	key := attendance.GetReportKey("emp-1", "2024-01-01", "2024-01-07")
	index := attendance.GetReportIndexKey("emp-1")

	t.Run("cache miss queries overlapping visits and fills cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := mock.NewMockVisitFinder(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		m := metrics.New(prometheus.NewRegistry())
		svc := attendance.NewService(finder, attendance.NewCache(rdb, ttl, zap.NewNop()), clock.Fixed(time.UTC, now), m, zap.NewNop())

		want := attendance.Report{EmployeeID: "emp-1", Start: "2024-01-01", End: "2024-01-07", Days: []attendance.DayReport{}, Empty: true}
		payload, _ := json.Marshal(want)

		redisMock.ExpectGet(key).RedisNil()
		finder.EXPECT().Find(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f visit.Filter) ([]visit.Visit, error) {
			assert.Equal(t, "emp-1", f.EmpID)
			assert.Equal(t, []visit.MainStatus{visit.MainCancelled}, f.ExcludeStatuses)
			assert.Equal(t, jan1, *f.OverlapFrom)
			assert.Equal(t, jan7.AddDate(0, 0, 1).Add(-time.Nanosecond), *f.OverlapTo)
			return nil, nil
		})
		redisMock.ExpectTxPipeline()
		redisMock.ExpectSet(key, payload, ttl).SetVal("OK")
		redisMock.ExpectSAdd(index, key).SetVal(1)
		redisMock.ExpectExpire(index, ttl).SetVal(true)
		redisMock.ExpectTxPipelineExec()

		got, err := svc.GetAttendance(ctx, "emp-1", jan1, jan7)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
		assert.Equal(t, float64(1), testutil.ToFloat64(m.ReportCache.WithLabelValues("miss")))
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := mock.NewMockVisitFinder(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := attendance.NewService(finder, attendance.NewCache(rdb, ttl), clock.Fixed(time.UTC, now), nil, zap.NewNop())

		cached := attendance.Report{EmployeeID: "emp-1", Start: "2024-01-01", End: "2024-01-07",
			Days: []attendance.DayReport{{Date: "2024-01-01", Status: attendance.StatusPresent, VisitID: "V000001"}}}
		payload, _ := json.Marshal(cached)
		redisMock.ExpectGet(key).SetVal(string(payload))

		got, err := svc.GetAttendance(ctx, "emp-1", jan1, jan7)

		require.NoError(t, err)
		assert.Equal(t, cached, got)
	})

	t.Run("works without redis", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := mock.NewMockVisitFinder(ctrl)
		svc := attendance.NewService(finder, attendance.NewCache(nil, ttl), clock.Fixed(time.UTC, now), nil, zap.NewNop())

		finder.EXPECT().Find(ctx, gomock.Any()).Return([]visit.Visit{{
			VisitID: "V000001",
			FromTS:  jan1.Add(9 * time.Hour),
			ToTS:    jan7.Add(18 * time.Hour),
			Details: []visit.Details{{ForDate: jan1, DailyStatus: visit.DayCheckedIn, CheckIn: &visit.CheckPoint{At: jan1.Add(9 * time.Hour)}}},
		}}, nil)

		got, err := svc.GetAttendance(ctx, "emp-1", jan1, jan7)

		require.NoError(t, err)
		require.Len(t, got.Days, 3)
		assert.Equal(t, attendance.StatusHalfDay, got.Days[0].Status)
		assert.Equal(t, attendance.StatusAbsent, got.Days[2].Status)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := mock.NewMockVisitFinder(ctrl)
		svc := attendance.NewService(finder, attendance.NewCache(nil, ttl), clock.Fixed(time.UTC, now), nil, zap.NewNop())
		boom := errors.New("timeout")
		finder.EXPECT().Find(ctx, gomock.Any()).Return(nil, boom)

		_, err := svc.GetAttendance(ctx, "emp-1", jan1, jan7)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("range validation", func(t *testing.T) {
		svc := attendance.NewService(nil, nil, clock.Fixed(time.UTC, now), nil, zap.NewNop())

		_, err := svc.GetAttendance(ctx, "emp-1", jan7, jan1)
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidRange)

		_, err = svc.GetAttendance(ctx, "emp-1", jan1, jan1.AddDate(1, 0, 1))
		assert.ErrorIs(t, err, attendanceerrors.ErrRangeTooLong)
	})
}

func TestService_Invalidate(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()
	svc := attendance.NewService(nil, attendance.NewCache(rdb, ttl), clock.Fixed(time.UTC, now), nil, zap.NewNop())

	index := attendance.GetReportIndexKey("emp-1")
	k1 := attendance.GetReportKey("emp-1", "2024-01-01", "2024-01-07")
	k2 := attendance.GetReportKey("emp-1", "2024-01-01", "2024-01-31")
	redisMock.ExpectSMembers(index).SetVal([]string{k1, k2})
	redisMock.ExpectDel(k1, k2, index).SetVal(3)

	require.NoError(t, svc.Invalidate(ctx, "emp-1"))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestParseRange(t *testing.T) {
	start, end, err := attendance.ParseRange(attendance.ReportQuery{Start: "2024-01-01", End: "2024-01-07"})
	require.NoError(t, err)
	assert.Equal(t, jan1, start)
	assert.Equal(t, jan7, end)

	_, _, err = attendance.ParseRange(attendance.ReportQuery{Start: "01/01/2024", End: "2024-01-07"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
}
