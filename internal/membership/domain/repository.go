package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindProgram(ctx context.Context, db *gorm.DB, id int64) (*MembershipProgram, error)
	ListByLocation(ctx context.Context, db *gorm.DB, locationID int64) ([]MembershipProgram, error)
	// SaveProgram upserts the program row and replaces its categories,
	// fees, and rules wholesale in one transaction.
	SaveProgram(ctx context.Context, db *gorm.DB, program *MembershipProgram) error
	UpdateFeeAmount(ctx context.Context, db *gorm.DB, feeID int64, amount float64, updatedAt time.Time) error
}
