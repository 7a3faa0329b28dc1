package repository

import (
	"context"
	"errors"

	catalogdomain "github.com/clubkitlabs/clubkit/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, svc *catalogdomain.CatalogService) error {
	return db.WithContext(ctx).Create(svc).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, svc *catalogdomain.CatalogService) error {
	return db.WithContext(ctx).Save(svc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, locationID, id int64) (*catalogdomain.CatalogService, error) {
	var svc catalogdomain.CatalogService
	err := db.WithContext(ctx).
		Where("location_id = ? AND id = ?", locationID, id).
		First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repo) ListByLocation(ctx context.Context, db *gorm.DB, locationID int64) ([]catalogdomain.CatalogService, error) {
	var services []catalogdomain.CatalogService
	err := db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}
