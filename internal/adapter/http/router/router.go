package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ikondrat/classifier-example/internal/adapter/client"
	"github.com/ikondrat/classifier-example/internal/adapter/http/handler"
	"github.com/ikondrat/classifier-example/internal/adapter/http/middleware"
	"github.com/ikondrat/classifier-example/internal/adapter/repository/postgres"
	"github.com/ikondrat/classifier-example/internal/domain/repository"
	"github.com/ikondrat/classifier-example/internal/usecase"
)

// Setup creates and configures the Gin router. db and redisClient may be
// nil; the moderation endpoint works without them.
func Setup(db *gorm.DB, redisClient *redis.Client, mlClient *client.MLClient, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	tracker := middleware.NewRateTracker()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())
	router.Use(tracker.Middleware())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(db, redisClient, mlClient)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repositories
	var recordRepo repository.ModerationRepository
	if db != nil {
		recordRepo = postgres.NewModerationRepository(db)
	}

	// Initialize usecases
	classifier := client.NewMLClassifier(mlClient)
	moderationUC := usecase.NewModerationUsecase(recordRepo, classifier, redisClient, logger)

	// Initialize handlers
	moderationHandler := handler.NewModerationHandler(moderationUC)
	statsHandler := handler.NewStatsHandler(moderationUC, tracker)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		moderations := v1.Group("/moderations")
		{
			moderations.POST("", moderationHandler.Moderate)
			moderations.GET("", moderationHandler.ListModerations)
			moderations.GET("/:id", moderationHandler.GetModeration)
			moderations.DELETE("/:id", moderationHandler.DeleteModeration)
		}

		v1.GET("/stats", statsHandler.GetStats)
	}

	return router
}
