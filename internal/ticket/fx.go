package ticket

import (
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/ticket/repository"
	"github.com/omvsuite/omvadmin/internal/ticket/service"
)

var Module = fx.Module("ticket",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
