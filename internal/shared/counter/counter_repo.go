package counter

import (
	"context"
	"database/sql"

	"github.com/Yadlapure/health-care/internal/shared/connection"

	"gorm.io/gorm"
)

const (
	// ScopeGlobal is used for identifiers that are unique across the whole deployment.
	ScopeGlobal = "global"

	TypeVisit = "visit"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, scope string, counterType string) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic upsert so concurrent callers never observe the same value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (scope, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (scope, counter_type) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scope, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
