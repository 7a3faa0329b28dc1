package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

type Result string

const (
	ResultAllow Result = "ALLOW"
	ResultDeny  Result = "DENY"
)

func (r Result) Valid() bool {
	return r == ResultAllow || r == ResultDeny
}

type FeeType string

const (
	FeeTypeJoining FeeType = "JOINING"
	FeeTypeAnnual  FeeType = "ANNUAL"
)

type BillingCycle string

const (
	BillingCycleOneTime BillingCycle = "ONE_TIME"
	BillingCycleMonthly BillingCycle = "MONTHLY"
	BillingCycleYearly  BillingCycle = "YEARLY"
)

type MembershipProgram struct {
	ID         int64                `gorm:"column:id;primaryKey" json:"id,string"`
	LocationID int64                `gorm:"column:location_id" json:"location_id,string"`
	Name       string               `gorm:"column:name" json:"name"`
	Active     bool                 `gorm:"column:active" json:"active"`
	Categories []MembershipCategory `gorm:"foreignKey:MembershipProgramID" json:"categories"`
	CreatedAt  time.Time            `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time            `gorm:"column:updated_at" json:"updated_at"`
}

func (MembershipProgram) TableName() string { return "membership_programs" }

type MembershipCategory struct {
	ID                  int64             `gorm:"column:id;primaryKey" json:"id,string"`
	MembershipProgramID int64             `gorm:"column:membership_program_id" json:"membership_program_id,string"`
	Name                string            `gorm:"column:name" json:"name"`
	Active              bool              `gorm:"column:active" json:"active"`
	Fees                []Fee             `gorm:"foreignKey:MembershipCategoryID" json:"fees"`
	Rules               []EligibilityRule `gorm:"foreignKey:MembershipCategoryID" json:"rules"`
	CreatedAt           time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (MembershipCategory) TableName() string { return "membership_categories" }

type Fee struct {
	ID                   int64        `gorm:"column:id;primaryKey" json:"id,string"`
	MembershipCategoryID int64        `gorm:"column:membership_category_id" json:"membership_category_id,string"`
	FeeType              FeeType      `gorm:"column:fee_type" json:"fee_type"`
	BillingCycle         BillingCycle `gorm:"column:billing_cycle" json:"billing_cycle"`
	Amount               float64      `gorm:"column:amount" json:"amount"`
	Active               bool         `gorm:"column:active" json:"active"`
	CreatedAt            time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (Fee) TableName() string { return "category_fees" }

// EligibilityRule is a priority-ordered admit/deny predicate over
// household member-class counts. Lower priority evaluates first.
type EligibilityRule struct {
	ID                   int64                          `gorm:"column:id;primaryKey" json:"id,string"`
	MembershipCategoryID int64                          `gorm:"column:membership_category_id" json:"membership_category_id,string"`
	Priority             int                            `gorm:"column:priority" json:"priority"`
	Result               Result                         `gorm:"column:result" json:"result"`
	Message              string                         `gorm:"column:message" json:"message"`
	Condition            datatypes.JSONType[Condition]  `gorm:"column:condition" json:"condition"`
	CreatedAt            time.Time                      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time                      `gorm:"column:updated_at" json:"updated_at"`
}

func (EligibilityRule) TableName() string { return "eligibility_rules" }

// Household is the composition a category's rules are evaluated against.
type Household struct {
	ChildCount  int `json:"child_count"`
	AdultCount  int `json:"adult_count"`
	SeniorCount int `json:"senior_count"`
}

var (
	ErrInvalidLocation = errors.New("invalid_location")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidResult   = errors.New("invalid_rule_result")
	ErrInvalidFee      = errors.New("invalid_fee")
	ErrInvalidBound    = errors.New("invalid_rule_bound")
	ErrProgramNotFound = errors.New("membership_program_not_found")
	ErrCategoryNotFound = errors.New("membership_category_not_found")
	ErrRuleNotFound    = errors.New("eligibility_rule_not_found")
	ErrFeeNotFound     = errors.New("fee_not_found")
)
