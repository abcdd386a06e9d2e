package warehouse

import (
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/warehouse/repository"
	"github.com/omvsuite/omvadmin/internal/warehouse/service"
)

var Module = fx.Module("warehouse",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
