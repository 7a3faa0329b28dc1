package domain

import (
	"errors"
	"time"
)

// MembershipService links a catalog service into a membership program, or
// into the location's base plan when MembershipProgramID is nil.
type MembershipService struct {
	ID                  int64     `gorm:"column:id;primaryKey" json:"id,string"`
	LocationID          int64     `gorm:"column:location_id" json:"location_id,string"`
	MembershipProgramID *int64    `gorm:"column:membership_program_id" json:"membership_program_id,string,omitempty"`
	ServiceID           int64     `gorm:"column:service_id" json:"service_id,string"`
	Included            bool      `gorm:"column:included" json:"included"`
	UsageLimit          *string   `gorm:"column:usage_limit" json:"usage_limit,omitempty"`
	Discount            *string   `gorm:"column:discount" json:"discount,omitempty"`
	PartOfBasePlan      bool      `gorm:"column:part_of_base_plan" json:"part_of_base_plan"`
	Active              bool      `gorm:"column:active" json:"active"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (MembershipService) TableName() string { return "membership_services" }

// PriceTagKind distinguishes the two mutually exclusive pricing states of
// a bundled service.
type PriceTagKind string

const (
	TagFree    PriceTagKind = "FREE"
	TagPayable PriceTagKind = "PAYABLE"
)

// PriceTag is the tagged variant for the free/payable duality. An
// included service is Free no matter what discount string the record
// still carries; the stored value is preserved for toggling back but is
// never displayed or applied while included.
type PriceTag struct {
	Kind     PriceTagKind `json:"kind"`
	Discount *string      `json:"discount,omitempty"`
}

func TagOf(rec MembershipService) PriceTag {
	if rec.Included {
		return PriceTag{Kind: TagFree}
	}
	return PriceTag{Kind: TagPayable, Discount: rec.Discount}
}

// Display renders the tag for listing: "FREE", a discount expression, or
// empty for plain payable.
func (t PriceTag) Display() string {
	if t.Kind == TagFree {
		return "FREE"
	}
	if t.Discount != nil {
		return *t.Discount
	}
	return ""
}

// ResolvedService is the display join of a bundled-service record with
// the catalog.
type ResolvedService struct {
	ID             int64    `json:"id,string"`
	ServiceID      int64    `json:"service_id,string"`
	ServiceName    string   `json:"service_name"`
	Tag            PriceTag `json:"tag"`
	TagDisplay     string   `json:"tag_display"`
	UsageLimit     *string  `json:"usage_limit,omitempty"`
	PartOfBasePlan bool     `json:"part_of_base_plan"`
	Active         bool     `json:"active"`
}

const UnknownServiceName = "Unknown Service"

var (
	ErrInvalidLocation = errors.New("invalid_location")
	ErrInvalidService  = errors.New("invalid_service")
	ErrNotFound        = errors.New("membership_service_not_found")
)
