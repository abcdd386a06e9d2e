package transaction

import (
	"go.uber.org/fx"

	"github.com/omvsuite/omvadmin/internal/transaction/repository"
	"github.com/omvsuite/omvadmin/internal/transaction/service"
)

var Module = fx.Module("transaction",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
