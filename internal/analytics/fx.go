package analytics

import (
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/analytics/repository"
	"github.com/omvsuite/omvadmin/internal/analytics/service"
)

var Module = fx.Module("analytics",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
