package domain

import "context"

type Service interface {
	Upsert(ctx context.Context, req UpsertProgramRequest) (*MembershipProgram, error)
	Get(ctx context.Context, programID int64) (*MembershipProgram, error)
	ListByLocation(ctx context.Context, locationID int64) ([]MembershipProgram, error)
	Evaluate(ctx context.Context, req EvaluateRequest) (Outcome, error)
	SetRuleBound(ctx context.Context, req SetRuleBoundRequest) (*MembershipProgram, error)
	SetFeeAmount(ctx context.Context, req SetFeeAmountRequest) (*Fee, error)
}

// Outcome carries the eligibility verdict and, when a rule matched,
// which one. Matched distinguishes "denied by rule" from the default
// deny when nothing matched.
type Outcome struct {
	Result  Result `json:"result"`
	Message string `json:"message"`
	Matched bool   `json:"matched"`
	RuleID  int64  `json:"rule_id,string,omitempty"`
}

// UpsertProgramRequest replaces a program wholesale: the program is the
// unit of persistence for category, fee, and rule changes.
type UpsertProgramRequest struct {
	ID         int64
	LocationID int64
	Name       string
	Active     *bool
	Categories []CategoryInput
}

type CategoryInput struct {
	Name   string
	Active *bool
	Fees   []FeeInput
	Rules  []RuleInput
}

type FeeInput struct {
	FeeType      FeeType
	BillingCycle BillingCycle
	Amount       float64
	Active       *bool
}

type RuleInput struct {
	Priority  int
	Result    Result
	Message   string
	Condition Condition
}

type EvaluateRequest struct {
	ProgramID  int64
	CategoryID int64
	Household  Household
}

// SetRuleBoundRequest patches a single bound on one rule. A nil Value
// clears the bound. The owning program is re-persisted as a whole.
type SetRuleBoundRequest struct {
	ProgramID  int64
	CategoryID int64
	RuleID     int64
	Key        BoundKey
	Value      *int
}

type SetFeeAmountRequest struct {
	ProgramID  int64
	CategoryID int64
	FeeID      int64
	Amount     float64
}
