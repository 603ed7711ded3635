package controllers_fx

import (
	"go.uber.org/fx"

	"flexpay/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewCallbackController),
	fx.Provide(controllers.NewPaymentController))
