package handlers

import (
	config "pricegenie-api/configs"
	"pricegenie-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services groups everything the router serves.
type Services struct {
	Prediction *services.PricePredictionService
	EMI        *services.EMIService
	Investment *services.InvestmentService
	Market     *services.MarketService
	Monitoring *services.MonitoringService
}

// NewRouter registers middleware and every route on a new engine.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	r := gin.Default()

	predictionHandler := NewPredictionHandler(svc.Prediction)
	emiHandler := NewEMIHandler(svc.EMI)
	investmentHandler := NewInvestmentHandler(svc.Investment)
	marketHandler := NewMarketHandler(svc.Market)
	adminHandler := NewAdminHandler(cfg, svc.Prediction.ModelLoaded)
	monitoringHandler := NewMonitoringHandler(svc.Monitoring)

	r.Use(svc.Monitoring.LoggingMiddleware())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-API-KEY", services.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{services.RequestIDHeader, "Content-Disposition"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", adminHandler.HealthCheck)

	v1 := r.Group("/api/v1")
	v1.Use(AuthMiddleware(cfg.APIKey))
	v1.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	{
		v1.GET("/locations", predictionHandler.GetLocations)
		v1.POST("/predict", predictionHandler.Predict)
		v1.POST("/format", FormatAmount)

		emi := v1.Group("/emi")
		{
			emi.POST("", emiHandler.Calculate)
			emi.POST("/schedule.xlsx", emiHandler.ExportSchedule)
		}

		investment := v1.Group("/investment")
		{
			investment.POST("/roi", investmentHandler.AnalyzeROI)
			investment.GET("/comparison", investmentHandler.GetComparison)
		}

		market := v1.Group("/market")
		{
			market.GET("/analytics", marketHandler.GetAnalytics)
			market.POST("/import", marketHandler.ImportListings)
			market.POST("/reset", marketHandler.ResetListings)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	return r
}
