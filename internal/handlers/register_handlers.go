package handlers

import (
	"net/http"

	"countryexchange/cmd/docs"
	portssvc "countryexchange/internal/core/ports/services"
	"countryexchange/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Root greeting and health check
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Country Exchange API running successfully!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerCountryRoutes(r, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
