package customer

import (
	"github.com/omvsuite/omvadmin/internal/customer/repository"
	"github.com/omvsuite/omvadmin/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
