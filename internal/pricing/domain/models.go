package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role says whether a priced row is the primary membership price or an
// add-on price for an existing member.
type Role string

const (
	RolePrimary Role = "PRIMARY"
	RoleAddOn   Role = "ADD_ON"
)

func (r Role) Valid() bool {
	return r == RolePrimary || r == RoleAddOn
}

// SortRank orders roles for display: primary rows before add-on rows.
func (r Role) SortRank() int {
	if r == RolePrimary {
		return 0
	}
	return 1
}

// RowID identifies a pricing row. Equality is field-wise and
// case-sensitive; identifiers come from the axis catalogs and are never
// normalized here.
type RowID struct {
	PlanName   string
	Role       Role
	AgeGroupID int64
}

// CellID identifies one priced cell inside a row.
type CellID struct {
	RowID
	TermID int64
}

func (id RowID) String() string {
	return fmt.Sprintf("%s/%s/%d", id.PlanName, id.Role, id.AgeGroupID)
}

func (id CellID) String() string {
	return fmt.Sprintf("%s/%d", id.RowID, id.TermID)
}

// PriceCell is one priced entry in the matrix. ID is zero until the cell
// is first persisted; identity for upsert purposes is Key(), never ID.
type PriceCell struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id,string"`
	LocationID int64     `gorm:"column:location_id" json:"location_id,string"`
	PlanName   string    `gorm:"column:plan_name" json:"plan_name"`
	Role       Role      `gorm:"column:role" json:"role"`
	AgeGroupID int64     `gorm:"column:age_group_id" json:"age_group_id,string"`
	TermID     int64     `gorm:"column:subscription_term_id" json:"subscription_term_id,string"`
	Price      float64   `gorm:"column:price" json:"price"`
	Active     bool      `gorm:"column:active" json:"active"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PriceCell) TableName() string { return "price_cells" }

func (c PriceCell) RowKey() RowID {
	return RowID{PlanName: c.PlanName, Role: c.Role, AgeGroupID: c.AgeGroupID}
}

func (c PriceCell) Key() CellID {
	return CellID{RowID: c.RowKey(), TermID: c.TermID}
}

// PricingRow groups the cells sharing one RowID. Derived, never persisted.
type PricingRow struct {
	Key          RowID       `json:"key"`
	AgeGroupName string      `json:"age_group_name"`
	MinAge       int         `json:"min_age"`
	Cells        []PriceCell `json:"cells"`
}

// PlanGroup is the grouped listing consumed by the editing UI.
type PlanGroup struct {
	PlanName string       `json:"plan_name"`
	Rows     []PricingRow `json:"rows"`
}

// AgeGroupInfo is the slice of the age-group catalog the grouping sort
// needs: minimum age ascending, name as tiebreak.
type AgeGroupInfo struct {
	ID     int64
	Name   string
	MinAge int
}

var (
	ErrInvalidLocation = errors.New("invalid_location")
	ErrInvalidPlanName = errors.New("invalid_plan_name")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrInvalidAgeGroup = errors.New("invalid_age_group")
	ErrInvalidTerm     = errors.New("invalid_subscription_term")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrRowNotFound     = errors.New("pricing_row_not_found")
)
