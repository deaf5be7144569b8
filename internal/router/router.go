package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/config"
	"github.com/Payphone-Digital/property-api/internal/handler"
	"github.com/Payphone-Digital/property-api/internal/middleware"
	"github.com/Payphone-Digital/property-api/internal/service"
	"github.com/Payphone-Digital/property-api/pkg/redis"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth   *handler.AuthHandler
	Owner  *handler.OwnerHandler
	Prop   *handler.PropertyHandler
	Image  *handler.PropertyImageHandler
	Trace  *handler.PropertyTraceHandler
	Health *handler.HealthHandler
}

// Setup builds the gin engine with the full middleware chain and every
// route group mounted under /api.
func Setup(cfg *config.Config, jwt *service.JWTService, redisClient *redis.Client, h Handlers) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestContext(),
		middleware.RequestLogging(),
		middleware.CORS(),
		middleware.RateLimit(redisClient, cfg.RateLimit),
	)

	engine.GET("/health", h.Health.Check)

	api := engine.Group("/api")
	registerAuthRoutes(api, jwt, h.Auth)
	registerOwnerRoutes(api, jwt, h.Owner)
	registerPropertyRoutes(api, jwt, h.Prop, h.Image, h.Trace)

	return engine
}
