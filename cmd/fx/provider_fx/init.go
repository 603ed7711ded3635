package provider_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"log"
	"os"
	"strconv"

	"flexpay/internal/provider"
)

var Module = fx.Provide(
	provideProviderClient)

func provideProviderClient(logger *zap.Logger) provider.Client {
	testMode, _ := strconv.ParseBool(os.Getenv("PROVIDER_TEST_MODE"))

	cfg := provider.Config{
		PublicAPIKey:  os.Getenv("PROVIDER_PUBLIC_API_KEY"),
		PrivateAPIKey: os.Getenv("PROVIDER_PRIVATE_API_KEY"),
		TestMode:      testMode,
	}

	client, err := provider.NewHTTPClient(cfg, logger)
	if err != nil {
		log.Fatalf("Error initializing provider client: %v", err)
	}

	return client
}
