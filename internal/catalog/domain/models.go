package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CatalogService is one sellable service (swim class, sauna, personal
// training) in a location's catalog.
type CatalogService struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id,string"`
	LocationID int64     `gorm:"column:location_id" json:"location_id,string"`
	Code       string    `gorm:"column:code" json:"code"`
	Name       string    `gorm:"column:name" json:"name"`
	Active     bool      `gorm:"column:active" json:"active"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CatalogService) TableName() string { return "services" }

type UpsertRequest struct {
	ID         int64
	LocationID int64
	Code       string
	Name       string
	Active     *bool
}

type Service interface {
	Upsert(ctx context.Context, req UpsertRequest) (*CatalogService, error)
	ListByLocation(ctx context.Context, locationID int64) ([]CatalogService, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, svc *CatalogService) error
	Update(ctx context.Context, db *gorm.DB, svc *CatalogService) error
	FindByID(ctx context.Context, db *gorm.DB, locationID, id int64) (*CatalogService, error)
	ListByLocation(ctx context.Context, db *gorm.DB, locationID int64) ([]CatalogService, error)
}

var (
	ErrInvalidLocation = errors.New("invalid_location")
	ErrInvalidName     = errors.New("invalid_name")
	ErrNotFound        = errors.New("service_not_found")
)
