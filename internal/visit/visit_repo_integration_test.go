//go:build integration

package visit_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Yadlapure/health-care/internal/events"
	"github.com/Yadlapure/health-care/internal/messaging/kafka"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/shared/counter"
	"github.com/Yadlapure/health-care/internal/visit"
	visiterrors "github.com/Yadlapure/health-care/internal/visit/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	schema, err := filepath.Abs("../../migrations/0001_init.sql")
	require.NoError(t, err)

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("homecare"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.WithInitScripts(schema),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestRepository_Postgres(t *testing.T) {
	db := newPostgres(t)
	repo := visit.NewRepository(db)
	ctx := context.Background()

	v := newVisit(day(2024, 1, 1), day(2024, 1, 3))
	v.Version = 0
	require.NoError(t, repo.Create(ctx, v))
	assert.Equal(t, int64(1), v.Version)

	t.Run("duplicate id hits the primary key", func(t *testing.T) {
		dup := newVisit(day(2024, 3, 1), day(2024, 3, 3))
		dup.AssignedEmpID, dup.AssignedClientID = "emp-9", "client-9"
		err := repo.Create(ctx, dup)

		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr))
		assert.Equal(t, "23505", pgErr.Code)
		assert.Equal(t, "visits_pkey", pgErr.ConstraintName)
	})

	t.Run("details round trip through jsonb", func(t *testing.T) {
		got, err := repo.FindByVisitID(ctx, "V000001")
		require.NoError(t, err)
		require.Len(t, got.Details, 1)
		assert.True(t, got.Details[0].ForDate.Equal(day(2024, 1, 1)))
		assert.Equal(t, visit.DayInitiated, got.Details[0].DailyStatus)
	})

	t.Run("save is guarded by version", func(t *testing.T) {
		got, err := repo.FindByVisitID(ctx, "V000001")
		require.NoError(t, err)
		require.NoError(t, got.CheckIn(day(2024, 1, 1), visit.CheckPoint{ImageRef: "checkin/a.jpg", At: time.Now().UTC()}))

		require.NoError(t, repo.Save(ctx, got, 1))
		assert.Equal(t, int64(2), got.Version)
		assert.ErrorIs(t, repo.Save(ctx, got, 1), visit.ErrStaleVersion)

		stored, err := repo.FindByVisitID(ctx, "V000001")
		require.NoError(t, err)
		assert.Equal(t, visit.MainCheckedIn, stored.MainStatus)
		assert.Equal(t, "checkin/a.jpg", stored.Day(day(2024, 1, 1)).CheckIn.ImageRef)
	})

	t.Run("filter matches the in-memory semantics", func(t *testing.T) {
		from, to := day(2024, 1, 3), day(2024, 1, 10)
		after := day(2024, 1, 4)
		filters := []visit.Filter{
			{EmpID: "emp-1", OverlapFrom: &from, OverlapTo: &to},
			{OverlapFrom: &after, OverlapTo: &to},
			{ExcludeStatuses: []visit.MainStatus{visit.MainCheckedIn}},
			{Statuses: []visit.MainStatus{visit.MainCheckedIn}, ToBefore: &after},
		}
		stored, err := repo.FindByVisitID(ctx, "V000001")
		require.NoError(t, err)

		for _, f := range filters {
			got, err := repo.Find(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, f.Matches(*stored), len(got) == 1, "%+v", f)
		}
	})
}

func TestOverlapConstraints_Postgres(t *testing.T) {
	db := newPostgres(t)
	repo := visit.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newVisit(day(2024, 1, 1), day(2024, 1, 3))))

	t.Run("employee", func(t *testing.T) {
		v := newVisit(day(2024, 1, 3), day(2024, 1, 5))
		v.VisitID, v.AssignedClientID = "V000002", "client-2"

		var pgErr *pgconn.PgError
		require.True(t, errors.As(repo.Create(ctx, v), &pgErr))
		assert.Equal(t, "23P01", pgErr.Code)
		assert.Equal(t, "visits_emp_no_overlap", pgErr.ConstraintName)
	})

	t.Run("client", func(t *testing.T) {
		v := newVisit(day(2024, 1, 2), day(2024, 1, 2))
		v.VisitID, v.AssignedEmpID = "V000003", "emp-2"

		var pgErr *pgconn.PgError
		require.True(t, errors.As(repo.Create(ctx, v), &pgErr))
		assert.Equal(t, "visits_client_no_overlap", pgErr.ConstraintName)
	})

	t.Run("cancelled slots do not count", func(t *testing.T) {
		v := newVisit(day(2024, 1, 2), day(2024, 1, 4))
		v.VisitID, v.MainStatus = "V000004", visit.MainCancelled
		assert.NoError(t, repo.Create(ctx, v))
	})
}

func TestWriter_ConcurrentCreate_Postgres(t *testing.T) {
	db := newPostgres(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	w := visit.NewWriter(sqlDB,
		visit.NewRepository(db),
		counter.NewRepository(db),
		kafka.NewOutboxRepository(sqlDB),
		metrics.New(prometheus.NewRegistry()),
	)
	ctx := context.Background()

	const callers = 6
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := newVisit(day(2024, 1, 2), day(2024, 1, 3))
			v.VisitID = ""
			v.AssignedClientID = fmt.Sprintf("client-%d", i)
			errs[i] = w.Create(ctx, v, visit.Change{EventType: events.VisitAssigned})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, visiterrors.ErrEmployeeOverlap)
	}
	assert.Equal(t, 1, created)

	var booked int64
	require.NoError(t, db.Model(&visit.Visit{}).Where("assigned_emp_id = ?", "emp-1").Count(&booked).Error)
	assert.Equal(t, int64(1), booked)
}

func TestCounter_Postgres(t *testing.T) {
	db := newPostgres(t)
	repo := counter.NewRepository(db)
	ctx := context.Background()

	first, err := repo.GetNextValue(ctx, counter.ScopeGlobal, counter.TypeVisit)
	require.NoError(t, err)
	second, err := repo.GetNextValue(ctx, counter.ScopeGlobal, counter.TypeVisit)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}
