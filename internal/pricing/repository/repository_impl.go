package repository

import (
	"context"

	pricingdomain "github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricingdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cell *pricingdomain.PriceCell) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO price_cells (
			id, location_id, plan_name, role, age_group_id,
			subscription_term_id, price, active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cell.ID,
		cell.LocationID,
		cell.PlanName,
		cell.Role,
		cell.AgeGroupID,
		cell.TermID,
		cell.Price,
		cell.Active,
		cell.CreatedAt,
		cell.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, cell *pricingdomain.PriceCell) error {
	return db.WithContext(ctx).Exec(
		`UPDATE price_cells SET
			plan_name = ?, role = ?, age_group_id = ?, subscription_term_id = ?,
			price = ?, active = ?, updated_at = ?
		 WHERE location_id = ? AND id = ?`,
		cell.PlanName,
		cell.Role,
		cell.AgeGroupID,
		cell.TermID,
		cell.Price,
		cell.Active,
		cell.UpdatedAt,
		cell.LocationID,
		cell.ID,
	).Error
}

func (r *repo) ListByLocation(ctx context.Context, db *gorm.DB, locationID int64) ([]pricingdomain.PriceCell, error) {
	var cells []pricingdomain.PriceCell
	err := db.WithContext(ctx).
		Model(&pricingdomain.PriceCell{}).
		Where("location_id = ?", locationID).
		Order("plan_name ASC, role ASC, age_group_id ASC, subscription_term_id ASC").
		Find(&cells).Error
	if err != nil {
		return nil, err
	}
	return cells, nil
}
