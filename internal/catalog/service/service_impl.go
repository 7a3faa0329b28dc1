package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/clubkitlabs/clubkit/internal/catalog/domain"
	"github.com/clubkitlabs/clubkit/internal/clock"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  catalogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Upsert(ctx context.Context, req catalogdomain.UpsertRequest) (*catalogdomain.CatalogService, error) {
	if req.LocationID == 0 {
		return nil, catalogdomain.ErrInvalidLocation
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = slug.Make(name)
	}

	now := s.clock.Now(ctx)
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	if req.ID == 0 {
		svc := &catalogdomain.CatalogService{
			ID:         s.genID.Generate().Int64(),
			LocationID: req.LocationID,
			Code:       code,
			Name:       name,
			Active:     active,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repo.Insert(ctx, s.db, svc); err != nil {
			return nil, err
		}
		return svc, nil
	}

	svc, err := s.repo.FindByID(ctx, s.db, req.LocationID, req.ID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, catalogdomain.ErrNotFound
	}

	svc.Code = code
	svc.Name = name
	svc.Active = active
	svc.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListByLocation(ctx context.Context, locationID int64) ([]catalogdomain.CatalogService, error) {
	if locationID == 0 {
		return nil, catalogdomain.ErrInvalidLocation
	}
	return s.repo.ListByLocation(ctx, s.db, locationID)
}
