package routes

import (
	"kore-landing-backend/internal/api/handlers"
	"kore-landing-backend/internal/api/middleware"
	"kore-landing-backend/internal/config"
	"kore-landing-backend/internal/metrics"
	"kore-landing-backend/internal/repository"
	"kore-landing-backend/internal/schema"
	"kore-landing-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// SetupRoutes configures all the routes for the application. sel is the lead
// store chosen at startup; reg may be nil, in which case a fresh registry is used.
func SetupRoutes(cfg *config.Config, sel *repository.Selection, reg *metrics.Registry) *gin.Engine {
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.Metrics(reg))
	if cfg != nil && cfg.OtelEnabled {
		router.Use(otelgin.Middleware(cfg.OtelServiceName))
	}

	// Initialize services
	leadService := service.NewLeadService(sel.Store, schema.NewValidator(), sel.Backend, reg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(sel.DB, sel.Backend)
	leadHandler := handlers.NewLeadHandler(leadService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg.Gatherer(), promhttp.HandlerOpts{})))

	// Swagger documentation route
	if cfg == nil || !cfg.IsProduction() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// API routes
	api := router.Group("/api")
	{
		api.POST("/leads", leadHandler.CreateLead)
	}

	return router
}
