package server

import (
	"strings"

	membershipdomain "github.com/clubkitlabs/clubkit/internal/membership/domain"
	"github.com/gin-gonic/gin"
)

type upsertProgramRequest struct {
	ID         string                 `json:"id"`
	LocationID string                 `json:"location_id"`
	Name       string                 `json:"name"`
	Active     *bool                  `json:"active"`
	Categories []programCategoryInput `json:"categories"`
}

type programCategoryInput struct {
	Name   string             `json:"name"`
	Active *bool              `json:"active"`
	Fees   []programFeeInput  `json:"fees"`
	Rules  []programRuleInput `json:"rules"`
}

type programFeeInput struct {
	FeeType      string  `json:"fee_type"`
	BillingCycle string  `json:"billing_cycle"`
	Amount       float64 `json:"amount"`
	Active       *bool   `json:"active"`
}

type programRuleInput struct {
	Priority  int                        `json:"priority"`
	Result    string                     `json:"result"`
	Message   string                     `json:"message"`
	Condition membershipdomain.Condition `json:"condition"`
}

func (s *Server) UpsertMembershipProgram(c *gin.Context) {
	var req upsertProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	locationID, err := parseID(req.LocationID)
	if err != nil {
		AbortWithError(c, membershipdomain.ErrInvalidLocation)
		return
	}

	var programID int64
	if strings.TrimSpace(req.ID) != "" {
		programID, err = parseID(req.ID)
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	input := membershipdomain.UpsertProgramRequest{
		ID:         programID,
		LocationID: locationID,
		Name:       req.Name,
		Active:     req.Active,
	}
	for _, cat := range req.Categories {
		catInput := membershipdomain.CategoryInput{
			Name:   cat.Name,
			Active: cat.Active,
		}
		for _, fee := range cat.Fees {
			catInput.Fees = append(catInput.Fees, membershipdomain.FeeInput{
				FeeType:      membershipdomain.FeeType(fee.FeeType),
				BillingCycle: membershipdomain.BillingCycle(fee.BillingCycle),
				Amount:       fee.Amount,
				Active:       fee.Active,
			})
		}
		for _, rule := range cat.Rules {
			catInput.Rules = append(catInput.Rules, membershipdomain.RuleInput{
				Priority:  rule.Priority,
				Result:    membershipdomain.Result(rule.Result),
				Message:   rule.Message,
				Condition: rule.Condition,
			})
		}
		input.Categories = append(input.Categories, catInput)
	}

	program, err := s.membershipSvc.Upsert(c.Request.Context(), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := program.Name
	s.auditSvc.Log(c.Request.Context(), actorFrom(c), "membership.program.upsert", "membership_program", &targetID, map[string]any{
		"program_id": program.ID,
		"categories": len(program.Categories),
	})

	respondData(c, program)
}

func (s *Server) GetMembershipProgram(c *gin.Context) {
	programID, err := parseID(c.Param("programID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	program, err := s.membershipSvc.Get(c.Request.Context(), programID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, program)
}

func (s *Server) ListMembershipPrograms(c *gin.Context) {
	locationID, err := parseID(c.Param("locationID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	programs, err := s.membershipSvc.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, programs)
}

type evaluateRequest struct {
	CategoryID  string `json:"category_id"`
	ChildCount  int    `json:"child_count"`
	AdultCount  int    `json:"adult_count"`
	SeniorCount int    `json:"senior_count"`
}

func (s *Server) EvaluateEligibility(c *gin.Context) {
	programID, err := parseID(c.Param("programID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	categoryID, err := parseID(req.CategoryID)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	outcome, err := s.membershipSvc.Evaluate(c.Request.Context(), membershipdomain.EvaluateRequest{
		ProgramID:  programID,
		CategoryID: categoryID,
		Household: membershipdomain.Household{
			ChildCount:  req.ChildCount,
			AdultCount:  req.AdultCount,
			SeniorCount: req.SeniorCount,
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, outcome)
}

type setRuleBoundRequest struct {
	Key string `json:"key"`
	// Value is the raw edit-box content: empty clears the bound, since an
	// empty max means unlimited rather than zero capacity.
	Value *int `json:"value"`
}

func (s *Server) SetRuleBound(c *gin.Context) {
	programID, err := parseID(c.Param("programID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	categoryID, err := parseID(c.Param("categoryID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	ruleID, err := parseID(c.Param("ruleID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req setRuleBoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	program, err := s.membershipSvc.SetRuleBound(c.Request.Context(), membershipdomain.SetRuleBoundRequest{
		ProgramID:  programID,
		CategoryID: categoryID,
		RuleID:     ruleID,
		Key:        membershipdomain.BoundKey(req.Key),
		Value:      req.Value,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Log(c.Request.Context(), actorFrom(c), "membership.rule.bound.set", "eligibility_rule", nil, map[string]any{
		"program_id": programID,
		"rule_id":    ruleID,
		"key":        req.Key,
	})

	respondData(c, program)
}

type setFeeAmountRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) SetFeeAmount(c *gin.Context) {
	programID, err := parseID(c.Param("programID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	categoryID, err := parseID(c.Param("categoryID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	feeID, err := parseID(c.Param("feeID"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req setFeeAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	fee, err := s.membershipSvc.SetFeeAmount(c.Request.Context(), membershipdomain.SetFeeAmountRequest{
		ProgramID:  programID,
		CategoryID: categoryID,
		FeeID:      feeID,
		Amount:     req.Amount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Log(c.Request.Context(), actorFrom(c), "membership.fee.amount.set", "fee", nil, map[string]any{
		"fee_id": feeID,
		"amount": req.Amount,
	})

	respondData(c, fee)
}
