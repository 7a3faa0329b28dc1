package domain

import (
	"context"

	"gorm.io/gorm"
)

type Service interface {
	// BatchUpsert persists one or more bundled-service records in one
	// call: id present means update, absent means create.
	BatchUpsert(ctx context.Context, reqs []UpsertRequest) ([]MembershipService, error)
	// Resolve joins the records in scope against the service catalog for
	// display. A nil program ID resolves the location's base plan.
	Resolve(ctx context.Context, locationID int64, programID *int64) ([]ResolvedService, error)
	// Remove deactivates a record; bundled services are never deleted.
	Remove(ctx context.Context, locationID, id int64) (*MembershipService, error)
}

type UpsertRequest struct {
	ID                  int64
	LocationID          int64
	MembershipProgramID *int64
	ServiceID           int64
	Included            bool
	UsageLimit          *string
	Discount            *string
	PartOfBasePlan      bool
	Active              *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rec *MembershipService) error
	Update(ctx context.Context, db *gorm.DB, rec *MembershipService) error
	FindByID(ctx context.Context, db *gorm.DB, locationID, id int64) (*MembershipService, error)
	ListByScope(ctx context.Context, db *gorm.DB, locationID int64, programID *int64) ([]MembershipService, error)
}
