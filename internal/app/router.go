package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ecotrip/internal/handler"
	"ecotrip/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler           *handler.UserHandler
	TripHandler           *handler.TripHandler
	PlanHandler           *handler.PlanHandler
	RecommendationHandler *handler.RecommendationHandler
	BadgeHandler          *handler.BadgeHandler
	BenchmarkHandler      *handler.BenchmarkHandler
	RedisClient           *redis.Client
	NewRelicApp           *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/:id/badges", deps.BadgeHandler.GetEarned)
			users.POST("/:id/badges/check", deps.BadgeHandler.CheckAndAward)
		}

		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.POST("/:id/components", deps.TripHandler.AddComponent)
			trips.PUT("/:id/components/:componentId", deps.TripHandler.ReplaceComponent)
			trips.DELETE("/:id/components/:componentId", deps.TripHandler.RemoveComponent)
			trips.GET("/:id/carbon", deps.TripHandler.GetCarbon)
			trips.GET("/:id/comparison", deps.TripHandler.GetComparison)
			trips.GET("/:id/score", deps.TripHandler.GetScore)
			trips.GET("/:id/recommendations", deps.RecommendationHandler.GetForTrip)
			trips.POST("/:id/optimize", deps.PlanHandler.OptimizeTrip)
			trips.POST("/:id/actual", deps.TripHandler.RecordActual)
		}

		// Plan generation.
		v1.POST("/plans", deps.PlanHandler.GeneratePlan)

		// Ad hoc carbon aggregation.
		v1.POST("/carbon", deps.TripHandler.CalculateCarbon)

		// Benchmarks.
		v1.GET("/benchmarks", deps.BenchmarkHandler.Get)

		// Leaderboard.
		v1.GET("/leaderboard", deps.BadgeHandler.Leaderboard)
	}

	return router
}
