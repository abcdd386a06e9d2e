package plan

import (
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/plan/repository"
	"github.com/omvsuite/omvadmin/internal/plan/service"
)

var Module = fx.Module("plan",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
