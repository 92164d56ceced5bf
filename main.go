package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/config"
	"github.com/barnaud18/AgriScienceCrop-API/controllers"
	"github.com/barnaud18/AgriScienceCrop-API/middlewares"
	"github.com/barnaud18/AgriScienceCrop-API/realtime"
	"github.com/barnaud18/AgriScienceCrop-API/storage"
)

func main() {
	// Load environment variables
	godotenv.Load()
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer logger.Sync()

	// Pick the storage backend: PostgreSQL when DATABASE_URL is set,
	// otherwise the in-memory store.
	var base storage.Storage
	if cfg.DatabaseURL != "" {
		gs, err := storage.NewGormStorage(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		base = gs
		logger.Info("using postgres storage")
	} else {
		base = storage.NewMemStorage()
		logger.Info("using in-memory storage")
	}

	// Realtime hub and the notifying store that feeds it.
	hub := realtime.NewHub(cfg.JWTSecret, logger)
	store := storage.NewNotifyingStorage(base, hub, logger)

	ibge := controllers.NewIBGEService(cfg.IBGEBaseURL, cfg.IBGELocalitiesURL, logger)

	health := controllers.NewHealthController(store, cfg.Version)
	auth := controllers.NewAuthController(store, cfg.JWTSecret, logger)
	catalog := controllers.NewCatalogController(store, logger)
	productivity := controllers.NewProductivityController(store, ibge, cfg.DefaultYieldKgHa, logger)
	geo := controllers.NewGeoController(store, logger)
	monitoring := controllers.NewMonitoringController(store, logger)

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes
	r.GET("/health", health.Health)
	r.POST("/api/auth/register", auth.Register)
	r.POST("/api/auth/login", auth.Login)
	r.GET("/api/crops", catalog.ListCrops)
	r.GET("/api/protocols", catalog.ListProtocols)

	// Realtime channel; authentication happens in-band after connect.
	r.GET("/ws", hub.HandleWS)

	// Protected routes using auth middleware
	api := r.Group("/api")
	api.Use(middlewares.AuthRequired(cfg.JWTSecret))
	api.GET("/auth/me", auth.Me)

	api.GET("/recommendations", catalog.ListRecommendations)
	api.POST("/recommendations", catalog.CreateRecommendation)
	api.PUT("/recommendations/:id", catalog.UpdateRecommendation)
	api.DELETE("/recommendations/:id", catalog.DeleteRecommendation)
	api.POST("/recommendations/generate", catalog.GenerateRecommendations)

	api.POST("/productivity/calculate", productivity.Calculate)
	api.GET("/productivity/calculations", productivity.ListCalculations)

	api.POST("/professional/analyze", geo.Analyze)
	api.GET("/professional/analyses", geo.ListAnalyses)

	api.GET("/dashboard/stats", catalog.DashboardStats)

	api.GET("/monitoring/fields", monitoring.ListFields)
	api.POST("/monitoring/fields", monitoring.CreateField)
	api.PUT("/monitoring/fields/:id", monitoring.UpdateField)
	api.DELETE("/monitoring/fields/:id", monitoring.DeleteField)

	api.GET("/monitoring/data/:fieldId", monitoring.GetFieldData)
	api.POST("/monitoring/data", monitoring.CreateData)

	api.GET("/monitoring/alerts", monitoring.ListAlerts)
	api.POST("/monitoring/alerts", monitoring.CreateAlert)
	api.PUT("/monitoring/alerts/:id/read", monitoring.MarkAlertRead)
	api.PUT("/monitoring/alerts/:id/resolve", monitoring.MarkAlertResolved)

	api.GET("/monitoring/subscriptions", monitoring.ListSubscriptions)
	api.POST("/monitoring/subscriptions", monitoring.CreateSubscription)
	api.PUT("/monitoring/subscriptions/:id", monitoring.UpdateSubscription)
	api.DELETE("/monitoring/subscriptions/:id", monitoring.DeleteSubscription)

	logger.Info("AgriScienceCrop API listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
