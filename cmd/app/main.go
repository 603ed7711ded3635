package main

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"log"
	"os"

	"flexpay/cmd/fx/callback_fx"
	"flexpay/cmd/fx/controllers_fx"
	"flexpay/cmd/fx/db_fx"
	"flexpay/cmd/fx/gateway_fx"
	"flexpay/cmd/fx/logger_fx"
	"flexpay/cmd/fx/provider_fx"
	"flexpay/internal/api/controllers"
	"flexpay/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		logger_fx.Module,
		db_fx.Module,
		provider_fx.Module,
		gateway_fx.Module,
		callback_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	callbackController *controllers.CallbackController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, callbackController, paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	callbackController *controllers.CallbackController,
	paymentController *controllers.PaymentController) {

	callbackGroup := r.Group("/callback")
	callbackGroup.POST("/confirm", callbackController.Confirm)
	callbackGroup.GET("/cancel", callbackController.Cancel)

	paymentsGroup := r.Group("/payments")
	paymentsGroup.Use(middleware.JWTAuthMiddleware())
	paymentsGroup.POST("/checkout", paymentController.RegisterCheckout)
	paymentsGroup.POST("/authorize", paymentController.Authorize)
	paymentsGroup.POST("/:transaction_id/capture", paymentController.Capture)
	paymentsGroup.POST("/:transaction_id/void", paymentController.Void)
	paymentsGroup.POST("/:transaction_id/credit", paymentController.Credit)
}
