package sim

import (
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/sim/repository"
	"github.com/omvsuite/omvadmin/internal/sim/service"
)

var Module = fx.Module("sim",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
