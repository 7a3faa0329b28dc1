package pricing

import (
	"context"

	"github.com/clubkitlabs/clubkit/internal/agegroup"
	"github.com/clubkitlabs/clubkit/internal/pricing/cache"
	"github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/clubkitlabs/clubkit/internal/pricing/repository"
	"github.com/clubkitlabs/clubkit/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(cache.New),
	fx.Provide(newAgeGroupDirectory),
	fx.Provide(service.New),
)

type ageGroupDirectory struct {
	svc *agegroup.Service
}

func newAgeGroupDirectory(svc *agegroup.Service) domain.AgeGroupDirectory {
	return ageGroupDirectory{svc: svc}
}

func (d ageGroupDirectory) Lookup(ctx context.Context, locationID int64) (map[int64]domain.AgeGroupInfo, error) {
	groups, err := d.svc.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	infos := make(map[int64]domain.AgeGroupInfo, len(groups))
	for _, g := range groups {
		infos[g.ID] = domain.AgeGroupInfo{ID: g.ID, Name: g.Name, MinAge: g.MinAge}
	}
	return infos, nil
}
