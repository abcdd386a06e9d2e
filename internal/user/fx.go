package user

import (
	"github.com/omvsuite/omvadmin/internal/user/repository"
	"github.com/omvsuite/omvadmin/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
