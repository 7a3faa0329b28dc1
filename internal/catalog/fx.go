package catalog

import (
	"github.com/clubkitlabs/clubkit/internal/catalog/repository"
	"github.com/clubkitlabs/clubkit/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
