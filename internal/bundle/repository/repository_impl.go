package repository

import (
	"context"
	"errors"

	bundledomain "github.com/clubkitlabs/clubkit/internal/bundle/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() bundledomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rec *bundledomain.MembershipService) error {
	return db.WithContext(ctx).Create(rec).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rec *bundledomain.MembershipService) error {
	return db.WithContext(ctx).Save(rec).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, locationID, id int64) (*bundledomain.MembershipService, error) {
	var rec bundledomain.MembershipService
	err := db.WithContext(ctx).
		Where("location_id = ? AND id = ?", locationID, id).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repo) ListByScope(ctx context.Context, db *gorm.DB, locationID int64, programID *int64) ([]bundledomain.MembershipService, error) {
	query := db.WithContext(ctx).Where("location_id = ?", locationID)
	if programID == nil {
		query = query.Where("membership_program_id IS NULL")
	} else {
		query = query.Where("membership_program_id = ?", *programID)
	}

	var recs []bundledomain.MembershipService
	if err := query.Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
