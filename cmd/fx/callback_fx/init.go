package callback_fx

import (
	"go.uber.org/fx"

	"flexpay/internal/services"
)

var Module = fx.Provide(
	services.NewCallbackService)
