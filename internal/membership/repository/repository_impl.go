package repository

import (
	"context"
	"errors"
	"time"

	membershipdomain "github.com/clubkitlabs/clubkit/internal/membership/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() membershipdomain.Repository {
	return &repo{}
}

func (r *repo) FindProgram(ctx context.Context, db *gorm.DB, id int64) (*membershipdomain.MembershipProgram, error) {
	var program membershipdomain.MembershipProgram
	err := db.WithContext(ctx).
		Preload("Categories", func(q *gorm.DB) *gorm.DB { return q.Order("name ASC") }).
		Preload("Categories.Fees").
		Preload("Categories.Rules", func(q *gorm.DB) *gorm.DB { return q.Order("priority ASC, id ASC") }).
		Where("id = ?", id).
		First(&program).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *repo) ListByLocation(ctx context.Context, db *gorm.DB, locationID int64) ([]membershipdomain.MembershipProgram, error) {
	var programs []membershipdomain.MembershipProgram
	err := db.WithContext(ctx).
		Preload("Categories", func(q *gorm.DB) *gorm.DB { return q.Order("name ASC") }).
		Preload("Categories.Fees").
		Preload("Categories.Rules", func(q *gorm.DB) *gorm.DB { return q.Order("priority ASC, id ASC") }).
		Where("location_id = ?", locationID).
		Order("name ASC").
		Find(&programs).Error
	if err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *repo) SaveProgram(ctx context.Context, db *gorm.DB, program *membershipdomain.MembershipProgram) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&membershipdomain.MembershipProgram{}).
			Where("id = ?", program.ID).
			Count(&exists).Error; err != nil {
			return err
		}

		if exists > 0 {
			if err := tx.Exec(
				`UPDATE membership_programs SET name = ?, active = ?, updated_at = ? WHERE id = ?`,
				program.Name, program.Active, program.UpdatedAt, program.ID,
			).Error; err != nil {
				return err
			}
			// Children are replaced wholesale; the program is the unit of
			// persistence for category, fee, and rule changes.
			if err := tx.Exec(
				`DELETE FROM category_fees WHERE membership_category_id IN
				 (SELECT id FROM membership_categories WHERE membership_program_id = ?)`,
				program.ID,
			).Error; err != nil {
				return err
			}
			if err := tx.Exec(
				`DELETE FROM eligibility_rules WHERE membership_category_id IN
				 (SELECT id FROM membership_categories WHERE membership_program_id = ?)`,
				program.ID,
			).Error; err != nil {
				return err
			}
			if err := tx.Exec(
				`DELETE FROM membership_categories WHERE membership_program_id = ?`,
				program.ID,
			).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Exec(
				`INSERT INTO membership_programs (id, location_id, name, active, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				program.ID, program.LocationID, program.Name, program.Active,
				program.CreatedAt, program.UpdatedAt,
			).Error; err != nil {
				return err
			}
		}

		for i := range program.Categories {
			cat := &program.Categories[i]
			if err := tx.Create(cat).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) UpdateFeeAmount(ctx context.Context, db *gorm.DB, feeID int64, amount float64, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE category_fees SET amount = ?, updated_at = ? WHERE id = ?`,
		amount, updatedAt, feeID,
	).Error
}
