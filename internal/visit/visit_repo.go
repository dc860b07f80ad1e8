package visit

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/Yadlapure/health-care/internal/shared/connection"

	"gorm.io/gorm"
)

// ErrStaleVersion is returned by Save when another writer got there first.
var ErrStaleVersion = errors.New("visit version is stale")

// Filter selects visits. Zero fields are ignored. Overlap bounds are inclusive.
type Filter struct {
	AdminID         string
	ClientID        string
	EmpID           string
	Statuses        []MainStatus
	ExcludeStatuses []MainStatus
	OverlapFrom     *time.Time
	OverlapTo       *time.Time
	ToOnOrAfter     *time.Time
	ToBefore        *time.Time
	ExcludeVisitID  string
	NewestFirst     bool
	Limit           int
}

// Matches evaluates the filter in memory with the same semantics as the query.
func (f Filter) Matches(v Visit) bool {
	switch {
	case f.AdminID != "" && v.AssignedAdminID != f.AdminID:
		return false
	case f.ClientID != "" && v.AssignedClientID != f.ClientID:
		return false
	case f.EmpID != "" && v.AssignedEmpID != f.EmpID:
		return false
	case len(f.Statuses) > 0 && !slices.Contains(f.Statuses, v.MainStatus):
		return false
	case slices.Contains(f.ExcludeStatuses, v.MainStatus):
		return false
	case f.OverlapTo != nil && v.FromTS.After(*f.OverlapTo):
		return false
	case f.OverlapFrom != nil && v.ToTS.Before(*f.OverlapFrom):
		return false
	case f.ToOnOrAfter != nil && v.ToTS.Before(*f.ToOnOrAfter):
		return false
	case f.ToBefore != nil && !v.ToTS.Before(*f.ToBefore):
		return false
	case f.ExcludeVisitID != "" && v.VisitID == f.ExcludeVisitID:
		return false
	}
	return true
}

// Scope applies the filter to a gorm query.
func (f Filter) Scope(db *gorm.DB) *gorm.DB {
	if f.AdminID != "" {
		db = db.Where("assigned_admin_id = ?", f.AdminID)
	}
	if f.ClientID != "" {
		db = db.Where("assigned_client_id = ?", f.ClientID)
	}
	if f.EmpID != "" {
		db = db.Where("assigned_emp_id = ?", f.EmpID)
	}
	if len(f.Statuses) > 0 {
		db = db.Where("main_status IN ?", f.Statuses)
	}
	if len(f.ExcludeStatuses) > 0 {
		db = db.Where("main_status NOT IN ?", f.ExcludeStatuses)
	}
	if f.OverlapTo != nil {
		db = db.Where("from_ts <= ?", *f.OverlapTo)
	}
	if f.OverlapFrom != nil {
		db = db.Where("to_ts >= ?", *f.OverlapFrom)
	}
	if f.ToOnOrAfter != nil {
		db = db.Where("to_ts >= ?", *f.ToOnOrAfter)
	}
	if f.ToBefore != nil {
		db = db.Where("to_ts < ?", *f.ToBefore)
	}
	if f.ExcludeVisitID != "" {
		db = db.Where("visit_id <> ?", f.ExcludeVisitID)
	}

	if f.NewestFirst {
		db = db.Order("updated_at DESC")
	} else {
		db = db.Order("from_ts ASC").Order("visit_id ASC")
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	return db
}

//go:generate mockgen -source=visit_repo.go -destination=mock/visit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Visit) error
	FindByVisitID(ctx context.Context, visitID string) (*Visit, error)
	Find(ctx context.Context, f Filter) ([]Visit, error)
	// Save writes v only if the stored version still equals expectedVersion.
	Save(ctx context.Context, v *Visit, expectedVersion int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, v *Visit) error {
	if v.Version == 0 {
		v.Version = 1
	}
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindByVisitID(ctx context.Context, visitID string) (*Visit, error) {
	var v Visit
	err := r.db.WithContext(ctx).First(&v, "visit_id = ?", visitID).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Find(ctx context.Context, f Filter) ([]Visit, error) {
	var visits []Visit
	err := r.db.WithContext(ctx).Model(&Visit{}).Scopes(f.Scope).Find(&visits).Error
	return visits, err
}

func (r *repository) Save(ctx context.Context, v *Visit, expectedVersion int64) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&Visit{}).
		Where("visit_id = ? AND version = ?", v.VisitID, expectedVersion).
		Updates(map[string]any{
			"assigned_admin_id": v.AssignedAdminID,
			"assigned_emp_id":   v.AssignedEmpID,
			"from_ts":           v.FromTS,
			"to_ts":             v.ToTS,
			"lat":               v.Lat,
			"lng":               v.Lng,
			"main_status":       v.MainStatus,
			"details":           v.Details,
			"version":           expectedVersion + 1,
			"updated_at":        now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	v.Version = expectedVersion + 1
	v.UpdatedAt = now
	return nil
}
