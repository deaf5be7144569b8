package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/handler"
	"github.com/Payphone-Digital/property-api/internal/middleware"
	"github.com/Payphone-Digital/property-api/internal/service"
)

func registerOwnerRoutes(api *gin.RouterGroup, jwt *service.JWTService, h *handler.OwnerHandler) {
	owners := api.Group("/owners", middleware.RequireAuth(jwt))
	{
		owners.GET("", h.List)
		owners.GET("/:id", h.Get)

		admin := owners.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}
