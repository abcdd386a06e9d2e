package webhooklog

import (
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/webhooklog/repository"
	"github.com/omvsuite/omvadmin/internal/webhooklog/service"
)

var Module = fx.Module("webhooklog",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
