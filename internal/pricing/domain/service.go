package domain

import "context"

type Service interface {
	List(ctx context.Context, locationID int64) ([]PriceCell, error)
	GroupedByPlan(ctx context.Context, locationID int64) ([]PlanGroup, error)
	UpsertCell(ctx context.Context, req UpsertCellRequest) (PriceCell, error)
	SaveGrid(ctx context.Context, req SaveGridRequest) ([]PriceCell, error)
	ReclassifyRow(ctx context.Context, req ReclassifyRequest) ([]PriceCell, error)
	Refresh(ctx context.Context, locationID int64) error
}

type UpsertCellRequest struct {
	LocationID int64
	PlanName   string
	Role       Role
	AgeGroupID int64
	TermID     int64
	Price      float64
	Active     *bool
}

type SaveGridRequest struct {
	LocationID int64
	PlanName   string
	Role       Role
	Grid       Grid
}

type ReclassifyRequest struct {
	LocationID int64
	Row        RowID
	NewRole    Role
}

// AgeGroupDirectory is the read-only slice of the age-group catalog the
// grouping sort depends on.
type AgeGroupDirectory interface {
	Lookup(ctx context.Context, locationID int64) (map[int64]AgeGroupInfo, error)
}
