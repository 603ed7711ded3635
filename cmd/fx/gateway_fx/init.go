package gateway_fx

import (
	"go.uber.org/fx"

	"flexpay/internal/repositories"
	"flexpay/internal/services"
)

var Module = fx.Options(
	fx.Provide(repositories.NewTransactionRepository),
	fx.Provide(repositories.NewOrderRepository),
	fx.Provide(services.NewGatewayService),
)
