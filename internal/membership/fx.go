package membership

import (
	"github.com/clubkitlabs/clubkit/internal/membership/repository"
	"github.com/clubkitlabs/clubkit/internal/membership/service"
	"go.uber.org/fx"
)

var Module = fx.Module("membership.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
