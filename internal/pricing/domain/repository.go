package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cell *PriceCell) error
	Update(ctx context.Context, db *gorm.DB, cell *PriceCell) error
	ListByLocation(ctx context.Context, db *gorm.DB, locationID int64) ([]PriceCell, error)
}
