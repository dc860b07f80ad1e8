package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Yadlapure/health-care/internal/events"
	"github.com/Yadlapure/health-care/internal/messaging/kafka"
	"github.com/Yadlapure/health-care/internal/metrics"
	"github.com/Yadlapure/health-care/internal/shared/clock"
	"github.com/Yadlapure/health-care/internal/shared/contextutil"
	"github.com/Yadlapure/health-care/internal/shared/counter"
	visiterrors "github.com/Yadlapure/health-care/internal/visit/errors"

	"go.uber.org/zap"
)

const (
	AggregateType      = "visit"
	defaultMaxAttempts = 3

	// Held until commit. Keys are hashed, so a rare collision only serialises
	// two unrelated parties.
	lockParty = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

// Change names one lifecycle event produced by a mutation.
// ForDate is set for day-level changes.
type Change struct {
	EventType string
	ForDate   *time.Time
}

func DayChange(eventType string, date time.Time) Change {
	d := date
	return Change{EventType: eventType, ForDate: &d}
}

// Mutation edits v in place. Returning no changes means nothing is written.
type Mutation func(v *Visit) ([]Change, error)

//go:generate mockgen -source=visit_writer.go -destination=mock/visit_writer_mock.go -package=mock
type Writer interface {
	// Create inserts v, drawing a visit id from the counter when v has none.
	// The employee and client must be free over v's window.
	Create(ctx context.Context, v *Visit, changes ...Change) error
	// Apply loads the visit, runs fn and saves it under an optimistic version
	// check, re-running fn on a fresh copy when another writer won the race.
	// A mutation that moves the window or reopens a cancelled slot is checked
	// for overlaps like Create.
	Apply(ctx context.Context, visitID string, fn Mutation) (*Visit, error)
}

type writer struct {
	db          *sql.DB
	repo        Repository
	counter     counter.Repository
	outbox      kafka.OutboxRepository
	metrics     *metrics.Metrics
	maxAttempts int
	logger      *zap.Logger
}

func NewWriter(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Writer {
	l := zap.L().Named("visit.writer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visit.writer")
	}
	return &writer{
		db:          db,
		repo:        repo,
		counter:     counterRepo,
		outbox:      outboxRepo,
		metrics:     m,
		maxAttempts: defaultMaxAttempts,
		logger:      l,
	}
}

// FormatVisitID renders a counter value as a visit id, e.g. V000042.
func FormatVisitID(n int64) string {
	return fmt.Sprintf("V%06d", n)
}

func (w *writer) Create(ctx context.Context, v *Visit, changes ...Change) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		w.logger.Error("create visit begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if v.VisitID == "" {
		next, err := w.counter.WithTx(tx).GetNextValue(ctx, counter.ScopeGlobal, counter.TypeVisit)
		if err != nil {
			w.logger.Error("create visit next id failed", zap.Error(err))
			return err
		}
		v.VisitID = FormatVisitID(next)
	}

	qtx := w.repo.WithTx(tx)
	if err := w.guardSchedule(ctx, tx, qtx, v); err != nil {
		return err
	}
	if err := qtx.Create(ctx, v); err != nil {
		w.logger.Error("create visit persist failed", zap.String("visit_id", v.VisitID), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := w.enqueue(ctx, tx, v, changes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		w.logger.Error("create visit commit failed", zap.Error(err))
		return err
	}
	return nil
}

func (w *writer) Apply(ctx context.Context, visitID string, fn Mutation) (*Visit, error) {
	if visitID == "" {
		return nil, visiterrors.ErrMissingVisitID
	}

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		v, err := w.applyOnce(ctx, visitID, fn)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrStaleVersion) {
			return nil, mapRepositoryError(err)
		}
		w.metrics.VersionConflict()
		contextutil.Logger(ctx, w.logger).Warn("visit version conflict",
			zap.String("visit_id", visitID),
			zap.Int("attempt", attempt),
		)
	}
	return nil, visiterrors.ErrConcurrentUpdate
}

func (w *writer) applyOnce(ctx context.Context, visitID string, fn Mutation) (*Visit, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		w.logger.Error("apply visit begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := w.repo.WithTx(tx)
	v, err := qtx.FindByVisitID(ctx, visitID)
	if err != nil {
		return nil, err
	}

	expected := v.Version
	before := scheduleOf(v)
	changes, err := fn(v)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return v, nil
	}

	if after := scheduleOf(v); after != before && !after.cancelled {
		if err := w.guardSchedule(ctx, tx, qtx, v); err != nil {
			return nil, err
		}
	}
	if err := qtx.Save(ctx, v, expected); err != nil {
		return nil, err
	}
	if err := w.enqueue(ctx, tx, v, changes); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		w.logger.Error("apply visit commit failed", zap.String("visit_id", visitID), zap.Error(err))
		return nil, err
	}
	return v, nil
}

type schedule struct {
	empID, clientID string
	from, to        time.Time
	cancelled       bool
}

func scheduleOf(v *Visit) schedule {
	return schedule{
		empID:     v.AssignedEmpID,
		clientID:  v.AssignedClientID,
		from:      v.FromTS.UTC(),
		to:        v.ToTS.UTC(),
		cancelled: v.MainStatus == MainCancelled,
	}
}

// guardSchedule locks v's employee and client for the rest of tx and then
// looks for another live visit overlapping v's window. Locks are taken in
// key order so two writers sharing both parties cannot deadlock.
func (w *writer) guardSchedule(ctx context.Context, tx *sql.Tx, qtx Repository, v *Visit) error {
	keys := []string{"visit-emp:" + v.AssignedEmpID, "visit-client:" + v.AssignedClientID}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, lockParty, key); err != nil {
			w.logger.Error("visit party lock failed", zap.String("key", key), zap.Error(err))
			return err
		}
	}

	from, to := v.FromTS, v.ToTS
	checks := []struct {
		filter   Filter
		conflict error
	}{
		{Filter{EmpID: v.AssignedEmpID}, visiterrors.ErrEmployeeOverlap},
		{Filter{ClientID: v.AssignedClientID}, visiterrors.ErrClientOverlap},
	}
	for _, c := range checks {
		f := c.filter
		f.ExcludeStatuses = []MainStatus{MainCancelled}
		f.ExcludeVisitID = v.VisitID
		f.OverlapFrom, f.OverlapTo = &from, &to
		f.Limit = 1

		found, err := qtx.Find(ctx, f)
		if err != nil {
			return err
		}
		if len(found) > 0 {
			contextutil.Logger(ctx, w.logger).Warn("visit overlap detected under lock",
				zap.String("visit_id", v.VisitID),
				zap.String("existing_visit_id", found[0].VisitID),
			)
			return c.conflict
		}
	}
	return nil
}

func (w *writer) enqueue(ctx context.Context, tx *sql.Tx, v *Visit, changes []Change) error {
	if w.outbox == nil || len(changes) == 0 {
		return nil
	}
	outboxRepo := w.outbox.WithTx(tx)
	requestID := contextutil.GetRequestID(ctx)

	for _, c := range changes {
		payload := lifecycleEvent(v, c, requestID)
		ev, err := kafka.NewOutboxEvent(requestID, AggregateType, v.VisitID, c.EventType, events.VisitLifecycleTopic, payload)
		if err != nil {
			return err
		}
		if err := outboxRepo.Create(ctx, ev); err != nil {
			w.logger.Error("visit outbox persist failed",
				zap.String("visit_id", v.VisitID),
				zap.String("event_type", c.EventType),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

func lifecycleEvent(v *Visit, c Change, requestID string) events.VisitLifecycleEvent {
	ev := events.VisitLifecycleEvent{
		EventType:  c.EventType,
		RequestID:  requestID,
		VisitID:    v.VisitID,
		EmployeeID: v.AssignedEmpID,
		ClientID:   v.AssignedClientID,
		AdminID:    v.AssignedAdminID,
		MainStatus: string(v.MainStatus),
		Version:    v.Version,
		OccurredAt: time.Now().UTC(),
	}
	if c.ForDate != nil {
		ev.ForDate = clock.FormatDate(*c.ForDate)
		if day := v.Day(*c.ForDate); day != nil {
			ev.DailyStatus = string(day.DailyStatus)
		}
	}
	return ev
}
