package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"github.com/clubkitlabs/clubkit/internal/membership/domain"
	"github.com/clubkitlabs/clubkit/internal/membership/eligibility"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("membership.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertProgramRequest) (*domain.MembershipProgram, error) {
	if req.LocationID == 0 {
		return nil, domain.ErrInvalidLocation
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidName
	}
	for _, cat := range req.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return nil, domain.ErrInvalidName
		}
		for _, rule := range cat.Rules {
			if !rule.Result.Valid() {
				return nil, domain.ErrInvalidResult
			}
		}
		for _, fee := range cat.Fees {
			if fee.Amount < 0 {
				return nil, domain.ErrInvalidFee
			}
		}
	}

	now := s.clock.Now(ctx)
	program := &domain.MembershipProgram{
		ID:         req.ID,
		LocationID: req.LocationID,
		Name:       req.Name,
		Active:     boolOrDefault(req.Active, true),
		UpdatedAt:  now,
	}

	if req.ID == 0 {
		program.ID = s.genID.Generate().Int64()
		program.CreatedAt = now
	} else {
		existing, err := s.repo.FindProgram(ctx, s.db, req.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrProgramNotFound
		}
		program.CreatedAt = existing.CreatedAt
	}

	// Categories, fees, and rules are replaced wholesale; their surrogate
	// IDs are reassigned on every save.
	for _, catInput := range req.Categories {
		cat := domain.MembershipCategory{
			ID:                  s.genID.Generate().Int64(),
			MembershipProgramID: program.ID,
			Name:                catInput.Name,
			Active:              boolOrDefault(catInput.Active, true),
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		for _, feeInput := range catInput.Fees {
			cat.Fees = append(cat.Fees, domain.Fee{
				ID:                   s.genID.Generate().Int64(),
				MembershipCategoryID: cat.ID,
				FeeType:              feeInput.FeeType,
				BillingCycle:         feeInput.BillingCycle,
				Amount:               feeInput.Amount,
				Active:               boolOrDefault(feeInput.Active, true),
				CreatedAt:            now,
				UpdatedAt:            now,
			})
		}
		for _, ruleInput := range catInput.Rules {
			cat.Rules = append(cat.Rules, domain.EligibilityRule{
				ID:                   s.genID.Generate().Int64(),
				MembershipCategoryID: cat.ID,
				Priority:             ruleInput.Priority,
				Result:               ruleInput.Result,
				Message:              ruleInput.Message,
				Condition:            datatypes.NewJSONType(ruleInput.Condition),
				CreatedAt:            now,
				UpdatedAt:            now,
			})
		}
		program.Categories = append(program.Categories, cat)
	}

	if err := s.repo.SaveProgram(ctx, s.db, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *Service) Get(ctx context.Context, programID int64) (*domain.MembershipProgram, error) {
	program, err := s.repo.FindProgram(ctx, s.db, programID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, domain.ErrProgramNotFound
	}
	return program, nil
}

func (s *Service) ListByLocation(ctx context.Context, locationID int64) ([]domain.MembershipProgram, error) {
	if locationID == 0 {
		return nil, domain.ErrInvalidLocation
	}
	return s.repo.ListByLocation(ctx, s.db, locationID)
}

func (s *Service) Evaluate(ctx context.Context, req domain.EvaluateRequest) (domain.Outcome, error) {
	program, err := s.repo.FindProgram(ctx, s.db, req.ProgramID)
	if err != nil {
		return domain.Outcome{}, err
	}
	if program == nil {
		return domain.Outcome{}, domain.ErrProgramNotFound
	}

	for _, cat := range program.Categories {
		if cat.ID == req.CategoryID {
			return eligibility.Evaluate(cat.Rules, req.Household), nil
		}
	}
	return domain.Outcome{}, domain.ErrCategoryNotFound
}

// SetRuleBound patches one bound on one rule, then re-persists the owning
// program wholesale.
func (s *Service) SetRuleBound(ctx context.Context, req domain.SetRuleBoundRequest) (*domain.MembershipProgram, error) {
	program, err := s.repo.FindProgram(ctx, s.db, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, domain.ErrProgramNotFound
	}

	var found bool
	for ci := range program.Categories {
		cat := &program.Categories[ci]
		if cat.ID != req.CategoryID {
			continue
		}
		for ri := range cat.Rules {
			rule := &cat.Rules[ri]
			if rule.ID != req.RuleID {
				continue
			}
			cond := rule.Condition.Data()
			if err := cond.SetBound(req.Key, req.Value); err != nil {
				return nil, err
			}
			rule.Condition = datatypes.NewJSONType(cond)
			rule.UpdatedAt = s.clock.Now(ctx)
			found = true
		}
		if !found {
			return nil, domain.ErrRuleNotFound
		}
	}
	if !found {
		return nil, domain.ErrCategoryNotFound
	}

	program.UpdatedAt = s.clock.Now(ctx)
	if err := s.repo.SaveProgram(ctx, s.db, program); err != nil {
		return nil, err
	}
	return program, nil
}

// SetFeeAmount is the dedicated per-field update path for fee amounts.
func (s *Service) SetFeeAmount(ctx context.Context, req domain.SetFeeAmountRequest) (*domain.Fee, error) {
	if req.Amount < 0 {
		return nil, domain.ErrInvalidFee
	}

	program, err := s.repo.FindProgram(ctx, s.db, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, domain.ErrProgramNotFound
	}

	for _, cat := range program.Categories {
		if cat.ID != req.CategoryID {
			continue
		}
		for _, fee := range cat.Fees {
			if fee.ID != req.FeeID {
				continue
			}
			fee.Amount = req.Amount
			fee.UpdatedAt = s.clock.Now(ctx)
			if err := s.repo.UpdateFeeAmount(ctx, s.db, fee.ID, fee.Amount, fee.UpdatedAt); err != nil {
				return nil, err
			}
			return &fee, nil
		}
		return nil, domain.ErrFeeNotFound
	}
	return nil, domain.ErrCategoryNotFound
}

func boolOrDefault(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
