package notification

import (
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/notification/repository"
	"github.com/omvsuite/omvadmin/internal/notification/service"
)

var Module = fx.Module("notification",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
