package bundle

import (
	"github.com/clubkitlabs/clubkit/internal/bundle/repository"
	"github.com/clubkitlabs/clubkit/internal/bundle/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bundle.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
