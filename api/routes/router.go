// api/routes/router.go
package routes

import (
	"net/http"
	"superpack/internal/auth"
	"superpack/internal/catalog"
	"superpack/internal/notifications"
	"superpack/internal/packages"
	"superpack/internal/quotes"
	"superpack/internal/shared/config"
	"superpack/internal/shared/database"
	"superpack/pkg/cache"
	"time"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// Shared services for cross-module injection
	cacheService   cache.Service
	packageService packages.Service
	catalogService catalog.Service
	jobProcessor   *quotes.JobProcessor
}

// NewRouter creates a new router instance. The producer may be nil when
// Kafka publishing is disabled.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	r.cacheService = cache.NewService(r.db.GetRedisClient())

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup auth routes
		r.setupAuthRoutes(api)

		// Packages and catalog must come before quotes for dependency injection
		r.setupPackageRoutes(api)
		r.setupCatalogRoutes(api)

		r.setupQuoteRoutes(api)
	}
}

// JobProcessor returns the background job processor, available after SetupRoutes.
func (r *Router) JobProcessor() *quotes.JobProcessor {
	return r.jobProcessor
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "superpack-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "superpack-backend",
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

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupPackageRoutes configures package and pricing-matrix routes
func (r *Router) setupPackageRoutes(rg *gin.RouterGroup) {
	packageRepo := packages.NewRepository(r.db.GetPostgreSQL())
	packageService := packages.NewService(packageRepo, r.cacheService)
	packageController := packages.NewController(packageService)

	// Store for injection into the quote sync engine
	r.packageService = packageService

	packages.SetupPackageRoutes(rg, packageController)
}

// setupCatalogRoutes configures the bookable events catalogue routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo, r.cacheService)
	catalogController := catalog.NewController(catalogService)

	r.catalogService = catalogService

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupQuoteRoutes configures quote management and sync routes
func (r *Router) setupQuoteRoutes(rg *gin.RouterGroup) {
	quoteRepo := quotes.NewRepository(r.db.GetPostgreSQL())
	syncEngine := quotes.NewEngine(quoteRepo, r.packageService)
	quoteService := quotes.NewService(quoteRepo, syncEngine, r.packageService, r.catalogService, r.producer)
	quoteController := quotes.NewController(quoteService)

	// Drift detector shares the repo and engine with the request path
	r.jobProcessor = quotes.NewJobProcessor(quoteRepo, syncEngine, r.packageService, &quotes.JobConfig{
		DriftCheckInterval: r.config.Jobs.DriftCheckInterval,
		BatchSize:          r.config.Jobs.DriftBatchSize,
	})

	quotes.SetupQuoteRoutes(rg, quoteController)
}
