// Package app wires configuration, services and the HTTP router together.
package app

import (
	"log"

	config "pricegenie-api/configs"
	"pricegenie-api/pkg/handlers"
	"pricegenie-api/pkg/modelclient"
	"pricegenie-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// LoadCatalog reads the location catalog from path. An empty path, or a file
// that fails to load, falls back to the built-in catalog.
func LoadCatalog(path string) *services.LocationCatalog {
	if path == "" {
		return services.DefaultLocationCatalog()
	}

	cfg, err := config.LoadLocations(path)
	if err != nil {
		log.Printf("⚠️ [catalog] %v; using built-in locations", err)
		return services.DefaultLocationCatalog()
	}
	if cfg.Model.FeatureLength != 0 && cfg.Model.FeatureLength != services.FeatureVectorLength {
		log.Printf("⚠️ [catalog] %s declares feature_length %d, expected %d; using built-in locations",
			path, cfg.Model.FeatureLength, services.FeatureVectorLength)
		return services.DefaultLocationCatalog()
	}

	entries := make([]services.LocationOffset, len(cfg.Locations))
	for i, e := range cfg.Locations {
		entries[i] = services.LocationOffset{Name: e.Name, Offset: e.Offset}
	}
	catalog, err := services.NewLocationCatalog(entries)
	if err != nil {
		log.Printf("⚠️ [catalog] %s: %v; using built-in locations", path, err)
		return services.DefaultLocationCatalog()
	}
	log.Printf("✅ [catalog] loaded %d locations from %s", catalog.Len(), path)
	return catalog
}

// LoadPredictor picks the remote predictor when a URL is configured and the
// local model file otherwise. It returns nil when neither is available.
func LoadPredictor(cfg *config.Config) services.Predictor {
	if cfg.PredictorURL != "" {
		log.Printf("✅ [model] using remote predictor at %s", cfg.PredictorURL)
		return modelclient.NewClient(cfg.PredictorURL, cfg.PredictorAPIKey)
	}
	if cfg.ModelPath == "" {
		log.Printf("⚠️ [model] no MODEL_PATH or PREDICTOR_URL configured; predictions disabled")
		return nil
	}

	model, err := services.LoadLinearModel(cfg.ModelPath)
	if err != nil {
		log.Printf("⚠️ [model] %v; predictions disabled", err)
		return nil
	}
	log.Printf("✅ [model] loaded %s", cfg.ModelPath)
	return model
}

// NewServices builds every service from cfg.
func NewServices(cfg *config.Config) handlers.Services {
	catalog := LoadCatalog(cfg.LocationsFile)
	return handlers.Services{
		Prediction: services.NewPricePredictionService(catalog, LoadPredictor(cfg)),
		EMI:        services.NewEMIService(),
		Investment: services.NewInvestmentService(),
		Market:     services.NewMarketService(catalog),
		Monitoring: services.NewMonitoringService(),
	}
}

// New returns the fully wired router.
func New(cfg *config.Config) *gin.Engine {
	return handlers.NewRouter(cfg, NewServices(cfg))
}
