package audit

import (
	"github.com/clubkitlabs/clubkit/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(service.New),
)
