// internal/api/routes.go
package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kaspa-ng/status-api/docs"
)

// SetupRoutes defines all the API endpoints and applies middleware.
func SetupRoutes(router *gin.Engine, srv *Server) {
	// Every response, including 404s, carries no-cache and CORS headers.
	router.Use(NoCacheMiddleware())

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	apiGroup := router.Group("/api")
	{
		// Liveness check
		apiGroup.GET("/healthz", srv.HealthzHandler) // GET /api/healthz

		// Host and stream metrics
		apiGroup.GET("/health/metrics", srv.SystemMetricsHandler) // GET /api/health/metrics

		// Build information
		apiGroup.GET("/version", srv.VersionHandler) // GET /api/version

		// Database stats or node status, depending on flavor
		apiGroup.GET("/status", srv.StatusHandler) // GET /api/status

		if srv.servesLogs() {
			logsGroup := apiGroup.Group("/logs/:service")
			{
				// One-shot snapshot
				logsGroup.GET("", srv.ServiceLogsHandler) // GET /api/logs/{service}

				// Live tail as text/event-stream
				logsGroup.GET("/stream", srv.ServiceLogsStreamHandler) // GET /api/logs/{service}/stream
			}
		}
	}
}
