// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tablebook/internal/availability"
	"tablebook/internal/conflicts"
	"tablebook/internal/holds"
	"tablebook/internal/reservations"
	"tablebook/internal/seating"
	"tablebook/internal/shared/config"
	"tablebook/internal/shared/database"
	"tablebook/internal/venues"
	"tablebook/pkg/cache"
	"tablebook/pkg/clock"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB

	// Shared across route groups
	cacheService cache.Service
	venueRepo    venues.Repository
	blockingRepo conflicts.Repository
	holdService  holds.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	r := &Router{
		config: cfg,
		db:     db,
	}

	if db.Redis != nil {
		r.cacheService = cache.NewService(db.GetRedisClient())
	}
	r.venueRepo = venues.NewRepository(db.GetPostgreSQL())
	r.blockingRepo = conflicts.NewRepository(db.GetPostgreSQL())

	return r
}

// HoldService exposes the hold service so the server can run the expiry
// sweep on the same instance the routes use.
func (r *Router) HoldService() holds.Service {
	return r.holdService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAvailabilityRoutes(api)
		r.setupSeatingRoutes(api)
		r.setupHoldRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tablebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tablebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAvailabilityRoutes configures availability evaluation routes
func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	var metrics availability.Metrics = availability.NopMetrics{}
	if r.cacheService != nil {
		metrics = availability.NewRedisMetrics(r.cacheService)
	}

	availabilityService := availability.NewService(r.venueRepo, r.blockingRepo, metrics, r.config)
	if r.cacheService != nil {
		availabilityService.SetCacheService(r.cacheService)
	}
	availabilityController := availability.NewController(availabilityService)

	availability.SetupAvailabilityRoutes(rg, availabilityController)
}

// setupSeatingRoutes configures seating suggestion and assignment routes
func (r *Router) setupSeatingRoutes(rg *gin.RouterGroup) {
	reservationRepo := reservations.NewRepository(r.db.GetPostgreSQL())
	seatingRepo := seating.NewRepository(r.db.GetPostgreSQL())

	seatingService := seating.NewService(reservationRepo, r.venueRepo, r.blockingRepo, seatingRepo, seating.NewWeightedScorer())
	seatingController := seating.NewController(seatingService)

	seating.SetupSeatingRoutes(rg, seatingController)
}

// setupHoldRoutes configures hold lifecycle routes
func (r *Router) setupHoldRoutes(rg *gin.RouterGroup) {
	holdRepo := holds.NewRepository(r.db.GetPostgreSQL())

	r.holdService = holds.NewService(holdRepo, r.venueRepo, r.config, clock.System())
	holdController := holds.NewController(r.holdService)

	holds.SetupHoldRoutes(rg, holdController)
}
