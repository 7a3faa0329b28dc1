package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	bundledomain "github.com/clubkitlabs/clubkit/internal/bundle/domain"
	catalogdomain "github.com/clubkitlabs/clubkit/internal/catalog/domain"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    bundledomain.Repository
	Catalog catalogdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    bundledomain.Repository
	catalog catalogdomain.Service
}

func New(p Params) bundledomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("bundle.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

func (s *Service) BatchUpsert(ctx context.Context, reqs []bundledomain.UpsertRequest) ([]bundledomain.MembershipService, error) {
	for _, req := range reqs {
		if req.LocationID == 0 {
			return nil, bundledomain.ErrInvalidLocation
		}
		if req.ServiceID == 0 {
			return nil, bundledomain.ErrInvalidService
		}
	}

	out := make([]bundledomain.MembershipService, 0, len(reqs))
	for _, req := range reqs {
		rec, err := s.upsertOne(ctx, req)
		if err != nil {
			return out, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (s *Service) upsertOne(ctx context.Context, req bundledomain.UpsertRequest) (*bundledomain.MembershipService, error) {
	now := s.clock.Now(ctx)
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if req.ID == 0 {
		rec := &bundledomain.MembershipService{
			ID:                  s.genID.Generate().Int64(),
			LocationID:          req.LocationID,
			MembershipProgramID: req.MembershipProgramID,
			ServiceID:           req.ServiceID,
			Included:            req.Included,
			UsageLimit:          req.UsageLimit,
			Discount:            req.Discount,
			PartOfBasePlan:      req.PartOfBasePlan,
			Active:              active,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := s.repo.Insert(ctx, s.db, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}

	rec, err := s.repo.FindByID(ctx, s.db, req.LocationID, req.ID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, bundledomain.ErrNotFound
	}

	// The discount is stored as submitted even when the service is
	// included; the resolver, not the store, enforces the display
	// invariant, and the stale value survives for toggling back.
	rec.MembershipProgramID = req.MembershipProgramID
	rec.ServiceID = req.ServiceID
	rec.Included = req.Included
	rec.UsageLimit = req.UsageLimit
	rec.Discount = req.Discount
	rec.PartOfBasePlan = req.PartOfBasePlan
	rec.Active = active
	rec.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Resolve(ctx context.Context, locationID int64, programID *int64) ([]bundledomain.ResolvedService, error) {
	if locationID == 0 {
		return nil, bundledomain.ErrInvalidLocation
	}

	recs, err := s.repo.ListByScope(ctx, s.db, locationID, programID)
	if err != nil {
		return nil, err
	}

	services, err := s.catalog.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(services))
	for _, svc := range services {
		names[svc.ID] = svc.Name
	}

	return ResolveDisplay(recs, names), nil
}

// ResolveDisplay joins bundled-service records with catalog names and
// applies the free/payable display invariant.
func ResolveDisplay(recs []bundledomain.MembershipService, names map[int64]string) []bundledomain.ResolvedService {
	out := make([]bundledomain.ResolvedService, 0, len(recs))
	for _, rec := range recs {
		name, ok := names[rec.ServiceID]
		if !ok {
			name = bundledomain.UnknownServiceName
		}
		tag := bundledomain.TagOf(rec)
		out = append(out, bundledomain.ResolvedService{
			ID:             rec.ID,
			ServiceID:      rec.ServiceID,
			ServiceName:    name,
			Tag:            tag,
			TagDisplay:     tag.Display(),
			UsageLimit:     rec.UsageLimit,
			PartOfBasePlan: rec.PartOfBasePlan,
			Active:         rec.Active,
		})
	}
	return out
}

func (s *Service) Remove(ctx context.Context, locationID, id int64) (*bundledomain.MembershipService, error) {
	rec, err := s.repo.FindByID(ctx, s.db, locationID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, bundledomain.ErrNotFound
	}

	rec.Active = false
	rec.UpdatedAt = s.clock.Now(ctx)
	if err := s.repo.Update(ctx, s.db, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
