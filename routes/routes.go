package routes

import (
	"CotizaLab/cache"
	"CotizaLab/catalog"
	"CotizaLab/config"
	"CotizaLab/controllers"
	"CotizaLab/database"
	"CotizaLab/handlers"
	"CotizaLab/middlewares"
	"CotizaLab/pdf"
	"CotizaLab/repositories"
	"CotizaLab/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, catalogLoader *catalog.Loader) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8501"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	quotationRepo := repositories.NewQuotationRepository(database.Get)
	orderRepo := repositories.NewOrderRepository(database.Get)

	lookupService := services.NewLookupService(quotationRepo, orderRepo, catalogLoader, cache)
	renderer := pdf.NewRenderer(pdf.DefaultLetterhead())
	documentService := services.NewDocumentService(lookupService, renderer, cache)

	lookupHandler := handlers.NewLookupHandler(lookupService, documentService)

	// Register routes
	controllers.SetupLookupRoutes(router, lookupHandler)
	controllers.SetupRootRoute(router)

	return router
}
