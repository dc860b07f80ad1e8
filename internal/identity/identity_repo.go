package identity

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=identity_repo.go -destination=mock/identity_repo_mock.go -package=mock
type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []string) ([]Profile, error)
	FindByRole(ctx context.Context, role Role) ([]Profile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByUserIDs(ctx context.Context, userIDs []string) ([]Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var rows []Profile
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByRole(ctx context.Context, role Role) ([]Profile, error) {
	var rows []Profile
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}
