package visit_test

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Yadlapure/health-care/internal/visit"
	visiterrors "github.com/Yadlapure/health-care/internal/visit/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// memRepository keeps visits in memory with the same filter and version
// semantics as the gorm repository.
type memRepository struct {
	mu   sync.Mutex
	rows map[string]visit.Visit
	tick time.Time
}

func newMemRepository(seed ...visit.Visit) *memRepository {
	r := &memRepository{rows: map[string]visit.Visit{}, tick: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, v := range seed {
		if v.Version == 0 {
			v.Version = 1
		}
		r.rows[v.VisitID] = cloneVisit(v)
	}
	return r
}

func cloneVisit(v visit.Visit) visit.Visit {
	v.Details = slices.Clone(v.Details)
	return v
}

func (r *memRepository) WithTx(*sql.Tx) visit.Repository { return r }

func (r *memRepository) Create(_ context.Context, v *visit.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[v.VisitID]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "visits_pkey"}
	}
	if v.Version == 0 {
		v.Version = 1
	}
	r.tick = r.tick.Add(time.Second)
	v.UpdatedAt = r.tick
	r.rows[v.VisitID] = cloneVisit(*v)
	return nil
}

func (r *memRepository) FindByVisitID(_ context.Context, visitID string) (*visit.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.rows[visitID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := cloneVisit(v)
	return &c, nil
}

func (r *memRepository) Find(_ context.Context, f visit.Filter) ([]visit.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []visit.Visit
	for _, v := range r.rows {
		if f.Matches(v) {
			out = append(out, cloneVisit(v))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if f.NewestFirst {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		if !out[i].FromTS.Equal(out[j].FromTS) {
			return out[i].FromTS.Before(out[j].FromTS)
		}
		return out[i].VisitID < out[j].VisitID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memRepository) Save(_ context.Context, v *visit.Visit, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[v.VisitID]
	if !ok || cur.Version != expectedVersion {
		return visit.ErrStaleVersion
	}
	v.Version = expectedVersion + 1
	r.tick = r.tick.Add(time.Second)
	v.UpdatedAt = r.tick
	r.rows[v.VisitID] = cloneVisit(*v)
	return nil
}

func (r *memRepository) get(visitID string) visit.Visit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneVisit(r.rows[visitID])
}

// memWriter applies mutations straight to memRepository and records every change.
type memWriter struct {
	repo    *memRepository
	nextID  int64
	changes []visit.Change
}

func (w *memWriter) Create(ctx context.Context, v *visit.Visit, changes ...visit.Change) error {
	if v.VisitID == "" {
		w.nextID++
		v.VisitID = visit.FormatVisitID(w.nextID)
	}
	if err := w.repo.Create(ctx, v); err != nil {
		return visiterrors.ErrVisitExists
	}
	w.changes = append(w.changes, changes...)
	return nil
}

func (w *memWriter) Apply(ctx context.Context, visitID string, fn visit.Mutation) (*visit.Visit, error) {
	v, err := w.repo.FindByVisitID(ctx, visitID)
	if err != nil {
		return nil, visiterrors.ErrVisitNotFound
	}
	expected := v.Version
	changes, err := fn(v)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return v, nil
	}
	if err := w.repo.Save(ctx, v, expected); err != nil {
		return nil, visiterrors.ErrConcurrentUpdate
	}
	w.changes = append(w.changes, changes...)
	return v, nil
}

func (w *memWriter) eventTypes() []string {
	out := make([]string, len(w.changes))
	for i, c := range w.changes {
		out[i] = c.EventType
	}
	return out
}
